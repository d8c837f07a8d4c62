package grid

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultColumnWidth is the width used for columns without an explicit width
// when the ColumnSpec does not set its own default.
const DefaultColumnWidth = 15

// Column declares one column of the grid.
type Column struct {
	// ID is the record field this column reads.
	ID string `yaml:"id"`

	// Width is the explicit width in cells. Nil means ColumnSpec.DefaultWidth;
	// an explicit value must be positive.
	Width *int `yaml:"width,omitempty"`
}

// ColumnSpec is the static, ordered column declaration of a grid.
type ColumnSpec struct {
	Columns []Column

	// DefaultWidth applies to columns without a width. Nil means DefaultColumnWidth.
	DefaultWidth *int
}

// Width returns a pointer to w for use in Column and ColumnSpec literals.
func Width(w int) *int {
	return &w
}

// IDs returns the column identifiers in declaration order.
func (s ColumnSpec) IDs() []string {
	ids := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		ids[i] = c.ID
	}
	return ids
}

// Layout resolves column geometry for a ColumnSpec. It is immutable once
// built; a changed ColumnSpec means building a new Layout.
type Layout struct {
	ids     []string
	labels  []string
	widths  []int
	offsets []int // offsets[i] is the x-offset of column i; offsets[n] is the total width
	index   map[string]int
}

// NewLayout validates spec and precomputes widths and the prefix-sum offset table.
func NewLayout(spec ColumnSpec) (*Layout, error) {
	def := DefaultColumnWidth
	if spec.DefaultWidth != nil {
		def = *spec.DefaultWidth
		if def <= 0 {
			return nil, fmt.Errorf("default width %d: %w", def, ErrInvalidWidth)
		}
	}

	n := len(spec.Columns)
	l := &Layout{
		ids:     make([]string, n),
		labels:  make([]string, n),
		widths:  make([]int, n),
		offsets: make([]int, n+1),
		index:   make(map[string]int, n),
	}

	for i, c := range spec.Columns {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("column %d: %w", i, ErrEmptyColumnID)
		}
		if _, dup := l.index[id]; dup {
			return nil, fmt.Errorf("column %q: %w", id, ErrDuplicateColumn)
		}
		w := def
		if c.Width != nil {
			w = *c.Width
			if w <= 0 {
				return nil, fmt.Errorf("column %q width %d: %w", id, w, ErrInvalidWidth)
			}
		}

		l.ids[i] = id
		l.labels[i] = HeaderLabel(id)
		l.widths[i] = w
		l.offsets[i+1] = l.offsets[i] + w
		l.index[id] = i
	}

	return l, nil
}

// MustLayout is NewLayout for specs known to be valid at compile time.
func MustLayout(spec ColumnSpec) *Layout {
	l, err := NewLayout(spec)
	if err != nil {
		panic(err)
	}
	return l
}

// Count returns the number of columns.
func (l *Layout) Count() int {
	return len(l.ids)
}

// WidthOf returns the resolved width of column i. It panics if i is out of range.
func (l *Layout) WidthOf(i int) int {
	l.mustIndex(i)
	return l.widths[i]
}

// XOffsetOf returns the sum of the widths of all columns before i.
// It panics if i is out of range.
func (l *Layout) XOffsetOf(i int) int {
	l.mustIndex(i)
	return l.offsets[i]
}

// TotalWidth returns the combined width of all columns.
func (l *Layout) TotalWidth() int {
	return l.offsets[len(l.ids)]
}

// ID returns the identifier of column i. It panics if i is out of range.
func (l *Layout) ID(i int) string {
	l.mustIndex(i)
	return l.ids[i]
}

// Label returns the header label of column i. It panics if i is out of range.
func (l *Layout) Label(i int) string {
	l.mustIndex(i)
	return l.labels[i]
}

// Index returns the position of the column with the given identifier.
func (l *Layout) Index(id string) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}

// IDs returns a copy of the column identifiers in order.
func (l *Layout) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// SameColumns reports whether other declares the same columns with the same widths.
func (l *Layout) SameColumns(other *Layout) bool {
	if other == nil || len(other.ids) != len(l.ids) {
		return false
	}
	for i := range l.ids {
		if l.ids[i] != other.ids[i] || l.widths[i] != other.widths[i] {
			return false
		}
	}
	return true
}

// ColumnAt returns the column containing x, measured from the left edge of
// column 0. It returns false when x lies outside the content.
func (l *Layout) ColumnAt(x int) (int, bool) {
	n := len(l.ids)
	if x < 0 || x >= l.offsets[n] {
		return -1, false
	}
	// first column whose right edge is past x
	i := sort.Search(n, func(i int) bool { return l.offsets[i+1] > x })
	return i, true
}

func (l *Layout) mustIndex(i int) {
	if i < 0 || i >= len(l.ids) {
		panic(fmt.Sprintf("grid: column index %d out of range [0,%d)", i, len(l.ids)))
	}
}

// HeaderLabel turns a camelCase identifier into a display label by inserting
// a space before each internal capital and upper-casing the first letter,
// e.g. "fullName" becomes "Full Name".
func HeaderLabel(id string) string {
	if id == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range id {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	s := b.String()

	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
