package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func uniformLayout(n, width int) *Layout {
	cols := make([]Column, n)
	for i := range cols {
		cols[i] = Column{ID: string(rune('a' + i)), Width: Width(width)}
	}
	return MustLayout(ColumnSpec{Columns: cols})
}

func TestCalculateWindow_FourteenRowScenario(t *testing.T) {
	const rowHeight = 50
	got := CalculateWindow(WindowParams{
		Viewport:  Viewport{Width: 300, Height: 5 * rowHeight, ScrollTop: 2 * rowHeight},
		RowHeight: rowHeight,
		RowCount:  14,
		Layout:    uniformLayout(3, 100),
	})

	assert.Equal(t, Range{Start: 2, End: 6}, got.Rows)
}

func TestCalculateWindow_NonUniformColumns(t *testing.T) {
	l := MustLayout(ColumnSpec{Columns: []Column{
		{ID: "a", Width: Width(200)}, {ID: "b", Width: Width(150)}, {ID: "c", Width: Width(400)},
	}})

	got := CalculateWindow(WindowParams{
		Viewport:  Viewport{Width: 300, Height: 10, ScrollLeft: 250},
		RowHeight: 1,
		RowCount:  1,
		Layout:    l,
	})

	want := Window{Rows: Range{0, 0}, Cols: Range{1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateWindow_EdgeCases(t *testing.T) {
	l := uniformLayout(4, 10)

	tests := []struct {
		name string
		p    WindowParams
		want Window
	}{
		{
			name: "zero rows keeps columns",
			p: WindowParams{
				Viewport:  Viewport{Width: 25, Height: 10},
				RowHeight: 1, RowCount: 0, Layout: l,
			},
			want: Window{Rows: EmptyRange, Cols: Range{0, 2}},
		},
		{
			name: "scroll past last row clamps",
			p: WindowParams{
				Viewport:  Viewport{Width: 40, Height: 5, ScrollTop: 1000},
				RowHeight: 1, RowCount: 10, Layout: l,
			},
			want: Window{Rows: Range{9, 9}, Cols: Range{0, 3}},
		},
		{
			name: "viewport larger than content",
			p: WindowParams{
				Viewport:  Viewport{Width: 500, Height: 500},
				RowHeight: 2, RowCount: 7, Layout: l,
			},
			want: Window{Rows: Range{0, 6}, Cols: Range{0, 3}},
		},
		{
			name: "negative scroll clamps to origin",
			p: WindowParams{
				Viewport:  Viewport{Width: 10, Height: 3, ScrollLeft: -4, ScrollTop: -9},
				RowHeight: 1, RowCount: 10, Layout: l,
			},
			want: Window{Rows: Range{0, 2}, Cols: Range{0, 0}},
		},
		{
			name: "scroll past last column clamps",
			p: WindowParams{
				Viewport:  Viewport{Width: 10, Height: 1, ScrollLeft: 999},
				RowHeight: 1, RowCount: 1, Layout: l,
			},
			want: Window{Rows: Range{0, 0}, Cols: Range{3, 3}},
		},
		{
			name: "partial rows at both edges",
			p: WindowParams{
				Viewport:  Viewport{Width: 10, Height: 4, ScrollTop: 3},
				RowHeight: 2, RowCount: 10, Layout: l,
			},
			want: Window{Rows: Range{1, 3}, Cols: Range{0, 0}},
		},
		{
			name: "partial columns at both edges",
			p: WindowParams{
				Viewport:  Viewport{Width: 12, Height: 1, ScrollLeft: 5},
				RowHeight: 1, RowCount: 1, Layout: l,
			},
			want: Window{Rows: Range{0, 0}, Cols: Range{0, 1}},
		},
		{
			name: "zero-sized viewport renders nothing",
			p: WindowParams{
				Viewport:  Viewport{},
				RowHeight: 1, RowCount: 10, Layout: l,
			},
			want: Window{Rows: EmptyRange, Cols: EmptyRange},
		},
		{
			name: "nil layout has no columns",
			p: WindowParams{
				Viewport:  Viewport{Width: 10, Height: 2},
				RowHeight: 1, RowCount: 3,
			},
			want: Window{Rows: Range{0, 1}, Cols: EmptyRange},
		},
		{
			name: "overscan widens rows within bounds",
			p: WindowParams{
				Viewport:  Viewport{Width: 10, Height: 3, ScrollTop: 1},
				RowHeight: 1, RowCount: 6, Layout: l, Overscan: 5,
			},
			want: Window{Rows: Range{0, 5}, Cols: Range{0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWindow(tt.p)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateWindow_RangesStayInBounds(t *testing.T) {
	l := MustLayout(ColumnSpec{Columns: []Column{
		{ID: "a", Width: Width(7)}, {ID: "b", Width: Width(1)}, {ID: "c", Width: Width(13)}, {ID: "d", Width: Width(4)},
	}})
	const rowCount = 23

	for rowHeight := 1; rowHeight <= 3; rowHeight++ {
		for top := -5; top <= rowCount*rowHeight+5; top++ {
			for left := -3; left <= l.TotalWidth()+3; left++ {
				w := CalculateWindow(WindowParams{
					Viewport:  Viewport{Width: 9, Height: 4, ScrollLeft: left, ScrollTop: top},
					RowHeight: rowHeight,
					RowCount:  rowCount,
					Layout:    l,
				})
				if w.Rows.Start < 0 || w.Rows.End > rowCount-1 || w.Rows.Empty() {
					t.Fatalf("rows %v out of bounds (top=%d, rh=%d)", w.Rows, top, rowHeight)
				}
				if w.Cols.Start < 0 || w.Cols.End > l.Count()-1 || w.Cols.Empty() {
					t.Fatalf("cols %v out of bounds (left=%d)", w.Cols, left)
				}
			}
		}
	}
}

func TestCalculateWindow_CoversEveryVisibleCell(t *testing.T) {
	l := MustLayout(ColumnSpec{Columns: []Column{
		{ID: "a", Width: Width(3)}, {ID: "b", Width: Width(5)}, {ID: "c", Width: Width(2)}, {ID: "d", Width: Width(6)},
	}})
	p := WindowParams{RowHeight: 2, RowCount: 9, Layout: l}
	p.Width, p.Height = 6, 5

	for top := 0; top <= MaxScrollTop(p.RowCount, p.RowHeight, p.Height); top++ {
		for left := 0; left <= MaxScrollLeft(l, p.Width); left++ {
			p.ScrollTop, p.ScrollLeft = top, left
			w := CalculateWindow(p)
			for y := range p.Height {
				for x := range p.Width {
					key, ok := CellAt(p, x, y)
					if !ok {
						continue
					}
					assert.True(t, w.Contains(key), "cell %v at (%d,%d) outside window %+v", key, x, y, w)
				}
			}
		}
	}
}

func TestCalculateWindow_InvalidRowHeightPanics(t *testing.T) {
	assert.Panics(t, func() {
		CalculateWindow(WindowParams{RowHeight: 0, RowCount: 1})
	})
}

func TestCellAt(t *testing.T) {
	l := MustLayout(ColumnSpec{Columns: []Column{
		{ID: "a", Width: Width(200)}, {ID: "b", Width: Width(150)}, {ID: "c", Width: Width(400)},
	}})
	p := WindowParams{
		Viewport:  Viewport{Width: 300, Height: 100, ScrollLeft: 250, ScrollTop: 50},
		RowHeight: 50,
		RowCount:  3,
		Layout:    l,
	}

	key, ok := CellAt(p, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, CellKey{Row: 1, Col: 1}, key)

	key, ok = CellAt(p, 150, 60)
	assert.True(t, ok)
	assert.Equal(t, CellKey{Row: 2, Col: 2}, key)

	_, ok = CellAt(p, 300, 0)
	assert.False(t, ok, "outside viewport")

	p.ScrollTop = 100
	_, ok = CellAt(p, 0, 60)
	assert.False(t, ok, "below the last row")
}

func TestMaxScroll(t *testing.T) {
	assert.Equal(t, 5, MaxScrollTop(10, 1, 5))
	assert.Equal(t, 0, MaxScrollTop(3, 1, 5))
	assert.Equal(t, 15, MaxScrollTop(10, 2, 5))

	l := uniformLayout(3, 10)
	assert.Equal(t, 10, MaxScrollLeft(l, 20))
	assert.Equal(t, 0, MaxScrollLeft(l, 40))
	assert.Equal(t, 0, MaxScrollLeft(nil, 40))
}

func TestRange(t *testing.T) {
	assert.True(t, EmptyRange.Empty())
	assert.Equal(t, 0, EmptyRange.Len())
	assert.False(t, EmptyRange.Contains(0))
	assert.Equal(t, "[]", EmptyRange.String())

	r := Range{Start: 2, End: 6}
	assert.Equal(t, 5, r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.Equal(t, "[2..6]", r.String())
}
