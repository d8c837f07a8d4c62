package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

const (
	emptyStateTitle = "No data to display"
	emptyStateHint  = "Try adjusting your search criteria"
)

// View implements tea.Model. It draws the header band followed by exactly
// height body lines, each exactly width cells wide.
func (m *GridModel) View() string {
	if m.width <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header.Render(m.layout, m.window.Cols, m.scrollLeft, m.width))
	if m.height <= 0 {
		return b.String()
	}

	if m.RowCount() == 0 {
		b.WriteByte('\n')
		b.WriteString(m.emptyState())
		return b.String()
	}

	lines := 0
	for row := m.window.Rows.Start; row <= m.window.Rows.End; row++ {
		top := row * m.rowHeight
		for sub := range m.rowHeight {
			line := m.cachedLine(row, sub)
			if top+sub < m.scrollTop || top+sub >= m.scrollTop+m.height {
				// overscan: rendered for the cache only
				continue
			}
			b.WriteByte('\n')
			b.WriteString(line)
			lines++
		}
	}
	m.pruneLines()

	blank := strings.Repeat(" ", m.width)
	for ; lines < m.height; lines++ {
		b.WriteByte('\n')
		b.WriteString(blank)
	}
	return b.String()
}

// cachedLine returns line sub of row, rendering it on a cache miss.
func (m *GridModel) cachedLine(row, sub int) string {
	n := row*m.rowHeight + sub
	if line, ok := m.lines[n]; ok {
		return line
	}
	rec, _ := m.dataset.At(row)
	line := m.renderLine(row, sub, rec)
	m.lines[n] = line
	return line
}

// pruneLines drops cached lines outside the current window.
func (m *GridModel) pruneLines() {
	lo := m.window.Rows.Start * m.rowHeight
	hi := (m.window.Rows.End + 1) * m.rowHeight
	for n := range m.lines {
		if n < lo || n >= hi {
			delete(m.lines, n)
		}
	}
}

// renderLine draws line sub of row: the visible slice of every column in the
// window. Values appear on the row's first line only.
func (m *GridModel) renderLine(row, sub int, rec profile.Record) string {
	var b strings.Builder
	used := 0
	for col := m.window.Cols.Start; col <= m.window.Cols.End; col++ {
		sp := clipColumn(m.layout, col, m.scrollLeft, m.width)
		if sp.To <= sp.From {
			continue
		}
		b.WriteString(m.renderCell(grid.CellKey{Row: row, Col: col}, sub, rec, sp))
		used += sp.To - sp.From
	}
	if used < m.width {
		b.WriteString(strings.Repeat(" ", m.width-used))
	}
	return b.String()
}

func (m *GridModel) renderCell(k grid.CellKey, sub int, rec profile.Record, sp span) string {
	width := m.layout.WidthOf(k.Col)
	style := m.styles.Cell
	text := ""
	url := ""

	if sub == 0 {
		value, ok := rec.Lookup(m.layout.ID(k.Col))
		switch {
		case !ok:
			text = emptyMarker
			style = m.styles.EmptyMarker
		case k.Col == m.linkCol:
			text = linkText
			url = NormalizeURL(value)
			style = m.styles.Link
		default:
			text = value
		}
	}

	out := m.cellStyle(k, style).Render(cutCells(fitCell(text, width), sp.From, sp.To))
	if url != "" {
		out = hyperlink(url, out)
	}
	return out
}

// cellStyle layers the cursor and selection highlights over base. A selected
// cell under the cursor keeps the selection colors.
func (m *GridModel) cellStyle(k grid.CellKey, base lipgloss.Style) lipgloss.Style {
	cursor := k == m.cursor && !m.plain
	selected := m.selection.Has(k)
	switch {
	case cursor && selected:
		return m.styles.SelectedCursor
	case cursor:
		return m.styles.Cursor
	case selected:
		return m.styles.Selected
	}
	return base
}

func (m *GridModel) emptyState() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.EmptyTitle.Render(emptyStateTitle),
		m.styles.EmptyHint.Render(emptyStateHint),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
