package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorBorder   = lipgloss.Color("240")
	colorMuted    = lipgloss.Color("245")
	colorAccent   = lipgloss.Color("39")
	colorSelected = lipgloss.Color("24")
	colorLink     = lipgloss.Color("75")
	colorError    = lipgloss.Color("196")
	colorOK       = lipgloss.Color("42")
)

//nolint:gochecknoglobals // Shared lipgloss styles, read-only after init.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	HeaderCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	CellStyle = lipgloss.NewStyle()

	SelectedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(colorSelected)

	CursorCellStyle = lipgloss.NewStyle().Reverse(true)

	// SelectedCursorCellStyle keeps the selection colors visible under the cursor.
	SelectedCursorCellStyle = SelectedCellStyle.Reverse(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(colorLink).
			Underline(true)

	EmptyMarkerStyle = lipgloss.NewStyle().Foreground(colorMuted)

	EmptyStateTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("250"))

	EmptyStateHintStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBorder)

	SelectionCountStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	StatusStyle = lipgloss.NewStyle().Foreground(colorOK)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)
)

// gridStyles is the set of styles one GridModel draws with.
type gridStyles struct {
	Header         lipgloss.Style
	Cell           lipgloss.Style
	Selected       lipgloss.Style
	Cursor         lipgloss.Style
	SelectedCursor lipgloss.Style
	Link           lipgloss.Style
	EmptyMarker    lipgloss.Style
	EmptyTitle     lipgloss.Style
	EmptyHint      lipgloss.Style
}

func defaultGridStyles() gridStyles {
	return gridStyles{
		Header:         HeaderCellStyle,
		Cell:           CellStyle,
		Selected:       SelectedCellStyle,
		Cursor:         CursorCellStyle,
		SelectedCursor: SelectedCursorCellStyle,
		Link:           LinkStyle,
		EmptyMarker:    EmptyMarkerStyle,
		EmptyTitle:     EmptyStateTitleStyle,
		EmptyHint:      EmptyStateHintStyle,
	}
}

// plainGridStyles draws without any escape sequences.
func plainGridStyles() gridStyles {
	s := lipgloss.NewStyle()
	return gridStyles{
		Header: s, Cell: s, Selected: s, Cursor: s, SelectedCursor: s,
		Link: s, EmptyMarker: s, EmptyTitle: s, EmptyHint: s,
	}
}
