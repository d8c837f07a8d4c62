// Package profile holds the flat profile records shown in the results grid and
// the loaders that read them from disk.
package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ListSeparator joins list values for display.
const ListSeparator = ", "

// Record is one profile: a mapping from column identifier to a scalar or a
// list of strings. Fields are read only through Lookup and List.
type Record map[string]any

// Lookup returns the display text of column. It returns ("", false) when the
// field is missing, nil, an empty string or an empty list.
func (r Record) Lookup(column string) (string, bool) {
	v, ok := r[column]
	if !ok {
		return "", false
	}
	s := formatValue(v)
	return s, s != ""
}

// List returns the values of column as a list. Scalars become a one-element
// list; missing fields return false.
func (r Record) List(column string) ([]string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return nil, false
	}

	var out []string
	switch t := v.(type) {
	case []string:
		out = t
	case []any:
		out = make([]string, 0, len(t))
		for _, item := range t {
			if s := formatValue(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := formatValue(v); s != "" {
			out = []string{s}
		}
	}
	return out, len(out) > 0
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ListSeparator)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := formatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ListSeparator)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Dataset is an ordered, immutable sequence of records. New data replaces a
// Dataset wholesale; it is never mutated in place.
type Dataset struct {
	// ID identifies this load; two loads of the same files get different IDs.
	ID       ulid.ULID
	Sources  []string
	LoadedAt time.Time

	records []Record
}

// NewDataset wraps records loaded from sources.
func NewDataset(records []Record, sources ...string) *Dataset {
	return &Dataset{
		ID:       ulid.Make(),
		Sources:  sources,
		LoadedAt: time.Now(),
		records:  records,
	}
}

// Len returns the number of records. A nil Dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns record i, or false when i is out of range.
func (d *Dataset) At(i int) (Record, bool) {
	if d == nil || i < 0 || i >= len(d.records) {
		return nil, false
	}
	return d.records[i], true
}

// Records returns the underlying records. Callers must not modify them.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}
