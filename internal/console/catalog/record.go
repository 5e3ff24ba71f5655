package catalog

import (
	"fmt"
	"strconv"
)

// Record is one persisted catalog entry as exchanged with the record API.
// Values are whatever the JSON decoder produced; numeric ids arrive as
// float64.
type Record map[string]any

// ID returns the record's id rendered as a string, or "" when absent.
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// NumericID returns the record's id as an integer. The second return is
// false when the id is absent or not numeric.
func (r Record) NumericID() (int64, bool) {
	switch id := r["id"].(type) {
	case float64:
		return int64(id), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
