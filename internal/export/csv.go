// Package export writes profile datasets to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

// ListSeparator joins list values inside one CSV field.
const ListSeparator = "; "

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no rows to export")

// WriteCSV writes a header row of column labels followed by one row per
// record index in rows. A nil rows exports every record.
func WriteCSV(w io.Writer, ds *profile.Dataset, layout *grid.Layout, rows []int) error {
	if rows == nil {
		rows = make([]int, ds.Len())
		for i := range rows {
			rows[i] = i
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, layout.Count())
	for c := range header {
		header[c] = layout.Label(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	fields := make([]string, layout.Count())
	for _, r := range rows {
		rec, ok := ds.At(r)
		if !ok {
			return fmt.Errorf("row %d out of range [0,%d)", r, ds.Len())
		}
		for c := range fields {
			fields[c] = field(rec, layout.ID(c))
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("writing row %d: %w", r, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func field(rec profile.Record, column string) string {
	if list, ok := rec.List(column); ok {
		return strings.Join(list, ListSeparator)
	}
	v, _ := rec.Lookup(column)
	return v
}

// SelectedRows returns the rows to export for a selection: every row touched
// by a selected cell, or nil (all rows) when nothing is selected.
func SelectedRows(sel *grid.SelectionStore) []int {
	if sel == nil || sel.Len() == 0 {
		return nil
	}
	return sel.Rows()
}

// FileName returns the export file name for a timestamp.
func FileName(at time.Time) string {
	return "profiles-" + at.Format("20060102-150405") + ".csv"
}

// ToFile exports rows (nil for all) into a new file in dir and returns its path.
func ToFile(dir string, ds *profile.Dataset, layout *grid.Layout, rows []int, at time.Time) (string, error) {
	if ds.Len() == 0 {
		return "", ErrNoRows
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(at))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	werr := WriteCSV(f, ds, layout, rows)
	cerr := f.Close()
	if err = errors.Join(werr, cerr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("exporting %s: %w", path, err)
	}
	return path, nil
}
