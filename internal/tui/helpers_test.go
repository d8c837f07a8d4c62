package tui

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b\][^\x1b\x07]*(?:\x1b\\|\x07)`)

// stripANSI removes SGR and OSC escape sequences.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func viewLines(m *GridModel) []string {
	return strings.Split(stripANSI(m.View()), "\n")
}

// testLayout has columns at x = 0, 10 and 18; total width 30.
func testLayout(t *testing.T) *grid.Layout {
	t.Helper()
	l, err := grid.NewLayout(grid.ColumnSpec{Columns: []grid.Column{
		{ID: "fullName", Width: grid.Width(10)},
		{ID: "jobTitle", Width: grid.Width(8)},
		{ID: "skills", Width: grid.Width(12)},
	}})
	require.NoError(t, err)
	return l
}

func testDataset(n int) *profile.Dataset {
	records := make([]profile.Record, n)
	for i := range records {
		records[i] = profile.Record{
			"fullName": fmt.Sprintf("Person %d", i),
			"jobTitle": "Eng",
			"skills":   []string{"go", "sql"},
		}
	}
	return profile.NewDataset(records)
}

// newTestGrid returns a grid of rows records sized width x (bodyHeight + header).
func newTestGrid(t *testing.T, rows, width, bodyHeight int) *GridModel {
	t.Helper()
	m := NewGridModel(GridOptions{Layout: testLayout(t)})
	m.SetDataset(testDataset(rows))
	m.SetSize(width, bodyHeight+headerHeight)
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func wheel(button tea.MouseButton, shift bool) tea.MouseMsg {
	return tea.MouseMsg{Button: button, Action: tea.MouseActionPress, Shift: shift}
}
