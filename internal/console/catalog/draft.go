package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
)

// Draft is the in-memory, not-yet-persisted field set for one entity
// instance. Values are the operator's raw textual input; coercion happens
// at composition time.
type Draft map[string]string

// NewDraft returns a draft with every descriptor field present and empty.
func NewDraft(d *Descriptor) Draft {
	draft := make(Draft, len(d.Fields))
	for _, f := range d.Fields {
		draft[f.Name] = ""
	}
	return draft
}

// IncompleteDraftError reports every field that keeps a draft from being
// submittable: required fields left empty and fields whose value failed
// coercion. errors.Is(err, common.ErrIncompleteDraft) matches it.
type IncompleteDraftError struct {
	Missing []string
	Invalid []string
}

func (e *IncompleteDraftError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "incomplete draft: " + strings.Join(parts, "; ")
}

func (e *IncompleteDraftError) Unwrap() error {
	return common.ErrIncompleteDraft
}

// Test seams for deterministic id generation.
var (
	nowFn      = time.Now
	randSuffix = func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	}
)

// Compose validates the draft against the descriptor, applies per-field
// coercions, and assigns an id per the descriptor's strategy. existing is
// the current in-memory record list (consulted for Sequential ids) and
// editingID, when non-empty, preserves the id of the record being edited
// instead of generating a fresh one.
//
// Validation failures return an *IncompleteDraftError listing every missing
// required field and every field whose value failed coercion.
func (d *Descriptor) Compose(draft Draft, existing []Record, editingID string) (Record, error) {
	incomplete := &IncompleteDraftError{}
	rec := make(Record, len(d.Fields)+1)

	for _, f := range d.Fields {
		raw := strings.TrimSpace(draft[f.Name])
		if raw == "" {
			raw = f.Default
		}
		if raw == "" {
			if f.Required {
				incomplete.Missing = append(incomplete.Missing, f.Name)
			} else {
				rec[f.Name] = ""
			}
			continue
		}

		switch f.Kind {
		case Integer:
			n, err := strconv.Atoi(raw)
			if err != nil {
				incomplete.Invalid = append(incomplete.Invalid, f.Name)
				continue
			}
			rec[f.Name] = n
		case Rating:
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 5 {
				incomplete.Invalid = append(incomplete.Invalid, f.Name)
				continue
			}
			rec[f.Name] = n
		case Choice:
			if !contains(f.Options, raw) {
				incomplete.Invalid = append(incomplete.Invalid, f.Name)
				continue
			}
			rec[f.Name] = raw
		default:
			rec[f.Name] = raw
		}
	}

	if len(incomplete.Missing) > 0 || len(incomplete.Invalid) > 0 {
		return nil, incomplete
	}

	if editingID != "" {
		rec["id"] = preserveID(editingID)
		return rec, nil
	}

	switch d.IDStrategy {
	case Sequential:
		rec["id"] = nextSequentialID(existing)
	case Timestamp:
		rec["id"] = nowFn().UnixMilli()
	case Composite:
		rec["id"] = fmt.Sprintf("%s_%d_%s", d.IDPrefix, nowFn().UnixMilli(), randSuffix())
	case ServerAssigned:
		// id omitted; the record API assigns one.
	}

	return rec, nil
}

// nextSequentialID returns max(existing numeric ids)+1, or 1 when the
// collection is empty or holds no numeric ids.
func nextSequentialID(existing []Record) int64 {
	var max int64
	for _, rec := range existing {
		if n, ok := rec.NumericID(); ok && n > max {
			max = n
		}
	}
	return max + 1
}

// preserveID keeps a numeric-looking edit id numeric so the record API sees
// the same type it originally assigned.
func preserveID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
