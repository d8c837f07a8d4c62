package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/profgrid/internal/grid"
)

func TestHeaderBand_Cells(t *testing.T) {
	l := testLayout(t)
	h := HeaderBand{}

	cells := h.Cells(l, grid.Range{Start: 0, End: 2}, 0, 40)
	require.Len(t, cells, 3)
	assert.Equal(t, HeaderCell{Col: 0, Label: "Full Name", X: 0, Width: 10}, cells[0])
	assert.Equal(t, HeaderCell{Col: 1, Label: "Job Title", X: 10, Width: 8}, cells[1])
	assert.Equal(t, HeaderCell{Col: 2, Label: "Skills", X: 18, Width: 12}, cells[2])
}

func TestHeaderBand_CellsClipped(t *testing.T) {
	l := testLayout(t)
	h := HeaderBand{}

	cells := h.Cells(l, grid.Range{Start: 0, End: 2}, 5, 15)
	require.Len(t, cells, 3)
	assert.Equal(t, HeaderCell{Col: 0, Label: "Full Name", X: 0, Width: 5}, cells[0])
	assert.Equal(t, HeaderCell{Col: 1, Label: "Job Title", X: 5, Width: 8}, cells[1])
	assert.Equal(t, HeaderCell{Col: 2, Label: "Skills", X: 13, Width: 2}, cells[2])
}

func TestHeaderBand_CellsEmpty(t *testing.T) {
	h := HeaderBand{}
	assert.Nil(t, h.Cells(nil, grid.Range{Start: 0, End: 2}, 0, 10))
	assert.Nil(t, h.Cells(testLayout(t), grid.EmptyRange, 0, 10))
	assert.Nil(t, h.Cells(testLayout(t), grid.Range{Start: 0, End: 2}, 0, 0))
}

func TestHeaderBand_Render(t *testing.T) {
	l := testLayout(t)
	h := HeaderBand{Style: lipgloss.NewStyle()}

	tests := []struct {
		name       string
		cols       grid.Range
		scrollLeft int
		width      int
		want       string
	}{
		{"all columns", grid.Range{Start: 0, End: 2}, 0, 30, "Full Name Job Ti… Skills      "},
		{"pads past the content", grid.Range{Start: 0, End: 2}, 0, 34, "Full Name Job Ti… Skills          "},
		{"scrolled mid column", grid.Range{Start: 0, End: 2}, 5, 15, "Name Job Ti… Sk"},
		{"no width", grid.Range{Start: 0, End: 2}, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(h.Render(l, tt.cols, tt.scrollLeft, tt.width)))
		})
	}
}
