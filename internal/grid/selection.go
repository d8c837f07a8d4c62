package grid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CellKey identifies a cell by its position in the current dataset.
// Keys are positional: row 5 of one dataset and row 5 of its replacement
// share a key even when they hold different records.
type CellKey struct {
	Row int
	Col int
}

// String renders the key as "row-col".
func (k CellKey) String() string {
	return strconv.Itoa(k.Row) + "-" + strconv.Itoa(k.Col)
}

// ParseCellKey parses the "row-col" form produced by CellKey.String.
func ParseCellKey(s string) (CellKey, error) {
	rowStr, colStr, ok := strings.Cut(s, "-")
	if !ok {
		return CellKey{}, fmt.Errorf("cell key %q: missing separator", s)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 0 {
		return CellKey{}, fmt.Errorf("cell key %q: invalid row", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 0 {
		return CellKey{}, fmt.Errorf("cell key %q: invalid column", s)
	}
	return CellKey{Row: row, Col: col}, nil
}

// compareKeys orders keys row-major.
func compareKeys(a, b CellKey) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// SelectionObserver receives the full selection after every mutation.
type SelectionObserver func(selected []CellKey)

// SelectionStore owns the set of selected cells. Membership is independent of
// what is currently rendered. It is not safe for concurrent use; the grid
// mutates it only from the UI event loop.
type SelectionStore struct {
	keys     map[CellKey]struct{}
	observer SelectionObserver
}

// NewSelectionStore returns an empty store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{keys: make(map[CellKey]struct{})}
}

// Observe registers fn to be called synchronously after every mutation.
// A nil fn removes the observer.
func (s *SelectionStore) Observe(fn SelectionObserver) {
	s.observer = fn
}

// Toggle flips the membership of key.
func (s *SelectionStore) Toggle(key CellKey) {
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
	} else {
		s.keys[key] = struct{}{}
	}
	s.notify()
}

// SetAll replaces the selection with keys.
func (s *SelectionStore) SetAll(keys []CellKey) {
	next := make(map[CellKey]struct{}, len(keys))
	for _, k := range keys {
		next[k] = struct{}{}
	}
	s.keys = next
	s.notify()
}

// Clear empties the selection.
func (s *SelectionStore) Clear() {
	clear(s.keys)
	s.notify()
}

// Has reports whether key is selected.
func (s *SelectionStore) Has(key CellKey) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of selected cells.
func (s *SelectionStore) Len() int {
	return len(s.keys)
}

// Keys returns the selected keys in row-major order.
func (s *SelectionStore) Keys() []CellKey {
	out := make([]CellKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	slices.SortFunc(out, compareKeys)
	return out
}

// Rows returns the distinct rows holding at least one selected cell, ascending.
func (s *SelectionStore) Rows() []int {
	seen := make(map[int]struct{}, len(s.keys))
	rows := make([]int, 0, len(s.keys))
	for k := range s.keys {
		if _, ok := seen[k.Row]; ok {
			continue
		}
		seen[k.Row] = struct{}{}
		rows = append(rows, k.Row)
	}
	slices.Sort(rows)
	return rows
}

func (s *SelectionStore) notify() {
	if s.observer != nil {
		s.observer(s.Keys())
	}
}
