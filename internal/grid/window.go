package grid

import "fmt"

// Range is an inclusive range of indices. A Range with End < Start is empty.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the canonical empty range.
var EmptyRange = Range{Start: 0, End: -1} //nolint:gochecknoglobals // Immutable sentinel value.

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// String implements fmt.Stringer.
func (r Range) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d..%d]", r.Start, r.End)
}

// Viewport is the visible rectangle of the grid body plus its scroll offset.
type Viewport struct {
	Width      int
	Height     int
	ScrollLeft int
	ScrollTop  int
}

// WindowParams is the input of CalculateWindow.
type WindowParams struct {
	Viewport

	// RowHeight is the fixed height of every row. It must be positive.
	RowHeight int

	// RowCount is the number of records in the dataset.
	RowCount int

	// Layout supplies the column geometry. A nil Layout has no columns.
	Layout *Layout

	// Overscan adds extra rows above and below the visible rows.
	Overscan int
}

// Window is the inclusive set of rows and columns that must be rendered.
type Window struct {
	Rows Range
	Cols Range
}

// Empty reports whether no cell is inside the window.
func (w Window) Empty() bool {
	return w.Rows.Empty() || w.Cols.Empty()
}

// Contains reports whether key lies inside the window.
func (w Window) Contains(key CellKey) bool {
	return w.Rows.Contains(key.Row) && w.Cols.Contains(key.Col)
}

// CalculateWindow returns the minimal row and column ranges whose cells cover
// the visible rectangle [scroll, scroll+size). Scroll offsets outside the
// content are clamped, so the result always lies within [0, count-1].
// The cost is logarithmic in the column count and constant in the row count.
func CalculateWindow(p WindowParams) Window {
	if p.RowHeight <= 0 {
		panic(fmt.Sprintf("grid: row height %d: %v", p.RowHeight, ErrInvalidRowHeight))
	}
	return Window{
		Rows: rowRange(p),
		Cols: colRange(p),
	}
}

func rowRange(p WindowParams) Range {
	if p.RowCount <= 0 || p.Height <= 0 {
		return EmptyRange
	}

	last := p.RowCount - 1
	top := max(p.ScrollTop, 0)

	start := min(top/p.RowHeight, last)
	end := min((top+p.Height-1)/p.RowHeight, last)

	if p.Overscan > 0 {
		start = max(start-p.Overscan, 0)
		end = min(end+p.Overscan, last)
	}

	return Range{Start: start, End: end}
}

func colRange(p WindowParams) Range {
	if p.Layout == nil || p.Layout.Count() == 0 || p.Width <= 0 {
		return EmptyRange
	}

	total := p.Layout.TotalWidth()
	left := min(max(p.ScrollLeft, 0), total-1)
	right := min(left+p.Width-1, total-1)

	start, _ := p.Layout.ColumnAt(left)
	end, _ := p.Layout.ColumnAt(right)

	return Range{Start: start, End: end}
}

// CellAt maps a point relative to the viewport's top-left corner to the cell
// under it. It returns false when the point is outside the viewport or past
// the end of the content.
func CellAt(p WindowParams, x, y int) (CellKey, bool) {
	if p.RowHeight <= 0 || p.Layout == nil {
		return CellKey{}, false
	}
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return CellKey{}, false
	}

	row := (max(p.ScrollTop, 0) + y) / p.RowHeight
	if row >= p.RowCount {
		return CellKey{}, false
	}

	col, ok := p.Layout.ColumnAt(max(p.ScrollLeft, 0) + x)
	if !ok {
		return CellKey{}, false
	}

	return CellKey{Row: row, Col: col}, true
}

// MaxScrollTop returns the largest useful vertical scroll offset.
func MaxScrollTop(rowCount, rowHeight, viewportHeight int) int {
	return max(rowCount*rowHeight-viewportHeight, 0)
}

// MaxScrollLeft returns the largest useful horizontal scroll offset.
func MaxScrollLeft(l *Layout, viewportWidth int) int {
	if l == nil {
		return 0
	}
	return max(l.TotalWidth()-viewportWidth, 0)
}
