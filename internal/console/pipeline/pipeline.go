// Package pipeline turns user-supplied form state plus an optional staged
// local file into a persisted remote record. One pipeline instance serves
// one entity screen; independent screens may run pipelines concurrently,
// sharing nothing but the read-only session token.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/api"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/catalog"
	"github.com/TheCasperSolangi/arc-fun-front/internal/logging"
)

// SubmissionState tracks one submission's progress:
// Idle → Validating → UploadingAsset? → Composing → Submitting → Idle.
// Failures return to Idle with the draft preserved; the reason is kept in
// LastFailure.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Validating
	UploadingAsset
	Composing
	Submitting
)

// RecordAPI is the record-collaborator surface the pipeline needs.
// Satisfied by api.RecordClient.
type RecordAPI interface {
	List(ctx context.Context, collection string, authorized bool) ([]catalog.Record, error)
	Create(ctx context.Context, collection string, rec catalog.Record) error
	Update(ctx context.Context, collection, id string, rec catalog.Record) error
	Delete(ctx context.Context, collection, id string) error
}

// StorageAPI is the asset-storage surface. Satisfied by api.StorageClient.
type StorageAPI interface {
	Upload(ctx context.Context, req api.UploadRequest) (string, error)
	Remove(ctx context.Context, key string) error
}

// Confirmer gates irreversible actions behind an interactive confirmation.
type Confirmer interface {
	Confirm(question string) bool
}

// StagedFile is an upload candidate produced by local file selection. It is
// consumed exactly once by a successful or failed upload attempt.
type StagedFile struct {
	Name      string
	MIMEType  string
	SizeBytes int64
	// Open yields the file content for the upload attempt.
	Open func() (io.ReadCloser, error)
}

// Options tune per-pipeline behavior.
type Options struct {
	// RollbackUploadOnSubmitFailure issues a best-effort storage delete for
	// assets uploaded during a submission whose final persist step fails.
	// Disabled by default: the stock behavior leaves the uploaded asset
	// unreferenced, which is a documented limitation rather than a silent
	// failure.
	RollbackUploadOnSubmitFailure bool
	// Progress observes fractional upload progress. Advisory only.
	Progress api.ProgressFunc
}

// Pipeline orchestrates the asset-backed record lifecycle for one entity
// type: validate input, optionally stage and upload a binary, then compose
// and submit the record.
type Pipeline struct {
	desc    *catalog.Descriptor
	records RecordAPI
	storage StorageAPI
	confirm Confirmer
	log     logging.Logger
	opts    Options

	state       SubmissionState
	lastFailure error
	draft       catalog.Draft
	staged      map[string]*StagedFile
	editingID   string
	cached      []catalog.Record

	nowFn func() time.Time
}

func New(desc *catalog.Descriptor, records RecordAPI, storage StorageAPI, confirm Confirmer, log logging.Logger, opts Options) *Pipeline {
	return &Pipeline{
		desc:    desc,
		records: records,
		storage: storage,
		confirm: confirm,
		log:     log.With("collection", desc.Collection),
		opts:    opts,
		draft:   catalog.NewDraft(desc),
		staged:  make(map[string]*StagedFile),
		nowFn:   time.Now,
	}
}

func (p *Pipeline) Descriptor() *catalog.Descriptor { return p.desc }
func (p *Pipeline) State() SubmissionState          { return p.state }

// LastFailure reports why the most recent operation failed, or nil.
func (p *Pipeline) LastFailure() error { return p.lastFailure }

// Field returns the draft's current raw value for name.
func (p *Pipeline) Field(name string) string { return p.draft[name] }

// Staged returns the staged upload candidate for an asset field, or nil.
func (p *Pipeline) Staged(name string) *StagedFile { return p.staged[name] }

// Records returns the cached record list from the last fetch.
func (p *Pipeline) Records() []catalog.Record { return p.cached }

// SetField stores a raw input value on the draft. Typing a URL into an
// asset-backed field discards any staged file for that field: per field,
// manual entry and file upload are mutually exclusive input modes.
func (p *Pipeline) SetField(name, value string) {
	p.draft[name] = value
	if value != "" && p.desc.AssetField(name) != nil {
		delete(p.staged, name)
	}
}

// StageFile validates f against the asset field's constraints and, on
// acceptance, makes it the field's staged upload candidate. A new file
// always replaces the previous candidate, and staging clears any
// manually-typed URL for the same field. On rejection the staged slot is
// left untouched.
func (p *Pipeline) StageFile(name string, f *StagedFile) error {
	af := p.desc.AssetField(name)
	if af == nil {
		return fmt.Errorf("field %q is not asset-backed", name)
	}

	p.state = Validating
	defer func() { p.state = Idle }()

	if !af.Constraints.Allows(f.MIMEType) {
		return p.fail(fmt.Errorf("%w: %s is not an accepted type for %s", common.ErrInvalidFileType, f.MIMEType, name))
	}
	if f.SizeBytes > af.Constraints.MaxSizeBytes {
		return p.fail(fmt.Errorf("%w: %d bytes exceeds the %d byte limit", common.ErrFileTooLarge, f.SizeBytes, af.Constraints.MaxSizeBytes))
	}

	p.staged[name] = f
	p.draft[name] = ""
	p.lastFailure = nil
	return nil
}

// BeginEdit loads an existing record into the draft for a PUT-style update.
func (p *Pipeline) BeginEdit(rec catalog.Record) {
	p.Reset()
	p.editingID = rec.ID()
	for _, f := range p.desc.Fields {
		p.draft[f.Name] = renderValue(rec[f.Name])
	}
}

// Reset clears the draft back to its empty shape and discards staged files
// and edit state.
func (p *Pipeline) Reset() {
	p.draft = catalog.NewDraft(p.desc)
	p.staged = make(map[string]*StagedFile)
	p.editingID = ""
}

// ListRecords fetches the full collection and fully replaces the cached
// list. The fetched list is the single source of truth for display.
func (p *Pipeline) ListRecords(ctx context.Context) ([]catalog.Record, error) {
	records, err := p.records.List(ctx, p.desc.Collection, p.desc.AuthorizedReads)
	if err != nil {
		return nil, p.fail(err)
	}
	p.cached = records
	return records, nil
}

// Submit drives one submission end to end. Ordering is the pipeline's core
// invariant: a staged file is uploaded first, and any upload failure aborts
// the submission before a record request is issued, so a record never
// references a URL that was not confirmed to exist.
func (p *Pipeline) Submit(ctx context.Context) error {
	p.lastFailure = nil

	var uploaded []uploadedAsset

	for _, af := range p.desc.AssetFields {
		f := p.staged[af.Name]
		if f == nil {
			continue
		}

		p.state = UploadingAsset
		url, key, err := p.uploadAsset(ctx, f)
		if err != nil {
			p.state = Idle
			return p.fail(err)
		}

		// Fold the confirmed URL into the draft and consume the candidate
		// so a retried submission does not re-upload.
		p.draft[af.Name] = url
		delete(p.staged, af.Name)
		uploaded = append(uploaded, uploadedAsset{field: af.Name, key: key})
	}

	p.state = Composing
	rec, err := p.desc.Compose(p.draft, p.cached, p.editingID)
	if err != nil {
		// An asset uploaded above is now unreferenced; it is intentionally
		// not rolled back here (see the package documentation).
		p.state = Idle
		return p.fail(err)
	}

	p.state = Submitting
	if p.editingID != "" {
		err = p.records.Update(ctx, p.desc.Collection, p.editingID, rec)
	} else {
		err = p.records.Create(ctx, p.desc.Collection, rec)
	}
	p.state = Idle

	if err != nil {
		if p.opts.RollbackUploadOnSubmitFailure {
			p.rollbackUploads(ctx, uploaded)
		}
		// The draft stays intact so the operator can retry without
		// re-entering data.
		return p.fail(err)
	}

	if _, err := p.ListRecords(ctx); err != nil {
		p.log.Warn(ctx, "refetch after save failed", "error", err.Error())
	}
	p.Reset()
	return nil
}

// DeleteRecord removes a record after interactive confirmation. There is no
// optimistic removal: the cached list only changes after a successful
// refetch.
func (p *Pipeline) DeleteRecord(ctx context.Context, id string) error {
	question := fmt.Sprintf("Are you sure you want to delete this %s?", p.desc.Name)
	if !p.confirm.Confirm(question) {
		return nil
	}

	if err := p.records.Delete(ctx, p.desc.Collection, id); err != nil {
		return p.fail(err)
	}

	if _, err := p.ListRecords(ctx); err != nil {
		p.log.Warn(ctx, "refetch after delete failed", "error", err.Error())
	}
	return nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// storageKey builds a collision-resistant key for an uploaded asset:
// {namespace}/{unixMillis}_{sanitizedOriginalFilename}.
func (p *Pipeline) storageKey(fileName string) string {
	safe := unsafeKeyChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("%s/%d_%s", p.desc.Namespace, p.nowFn().UnixMilli(), safe)
}

func (p *Pipeline) uploadAsset(ctx context.Context, f *StagedFile) (url, key string, err error) {
	body, err := f.Open()
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", common.ErrUploadFailed, err.Error())
	}
	defer body.Close()

	key = p.storageKey(f.Name)
	url, err = p.storage.Upload(ctx, api.UploadRequest{
		FileName:  f.Name,
		MIMEType:  f.MIMEType,
		SizeBytes: f.SizeBytes,
		Key:       key,
		Body:      body,
		Progress:  p.opts.Progress,
	})
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// uploadedAsset records one asset uploaded during the current submission,
// so a rollback can address exactly that upload and its draft field.
type uploadedAsset struct {
	field string
	key   string
}

// rollbackUploads best-effort deletes assets uploaded during a failed
// submission and clears the draft fields whose URLs now dangle. Fields fed
// by manual entry or by earlier submissions are left alone.
func (p *Pipeline) rollbackUploads(ctx context.Context, uploaded []uploadedAsset) {
	for _, u := range uploaded {
		if err := p.storage.Remove(ctx, u.key); err != nil {
			p.log.Warn(ctx, "upload rollback failed", "key", u.key, "error", err.Error())
		}
		p.draft[u.field] = ""
	}
}

func (p *Pipeline) fail(err error) error {
	p.lastFailure = err
	return err
}

func renderValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return fmt.Sprintf("%v", value)
	}
}
