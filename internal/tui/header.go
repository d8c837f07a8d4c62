package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/profgrid/internal/grid"
)

// HeaderCell is one rendered header cell.
type HeaderCell struct {
	Col   int
	Label string
	// X is the cell's position relative to the viewport's left edge.
	X     int
	Width int
}

// HeaderBand draws the column labels above the grid body. It shares the
// body's horizontal clip so both scroll together; it has no vertical scroll.
type HeaderBand struct {
	Style lipgloss.Style
}

// Cells returns one cell per column in cols, positioned and clipped against
// the viewport [scrollLeft, scrollLeft+width).
func (h HeaderBand) Cells(l *grid.Layout, cols grid.Range, scrollLeft, width int) []HeaderCell {
	if l == nil || cols.Empty() || width <= 0 {
		return nil
	}
	cells := make([]HeaderCell, 0, cols.Len())
	for c := cols.Start; c <= cols.End; c++ {
		sp := clipColumn(l, c, scrollLeft, width)
		if sp.To <= sp.From {
			continue
		}
		cells = append(cells, HeaderCell{
			Col:   c,
			Label: l.Label(c),
			X:     l.XOffsetOf(c) + sp.From - scrollLeft,
			Width: sp.To - sp.From,
		})
	}
	return cells
}

// Render draws the header band as a single line exactly width cells wide.
func (h HeaderBand) Render(l *grid.Layout, cols grid.Range, scrollLeft, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for c := cols.Start; l != nil && c <= cols.End; c++ {
		sp := clipColumn(l, c, scrollLeft, width)
		if sp.To <= sp.From {
			continue
		}
		text := cutCells(fitCell(l.Label(c), l.WidthOf(c)), sp.From, sp.To)
		b.WriteString(h.Style.Render(text))
		used += sp.To - sp.From
	}
	if used < width {
		b.WriteString(h.Style.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}
