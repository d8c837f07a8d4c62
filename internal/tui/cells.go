package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/rshade/profgrid/internal/grid"
)

const (
	// emptyMarker is shown for cells whose record has no value.
	emptyMarker = "—"

	// truncationTail replaces the cut-off end of a value too wide for its cell.
	truncationTail = "…"

	// linkText is the visible label of hyperlink cells.
	linkText = "Profile ↗"
)

// span is the part of a column that lies inside the viewport, in cell-local
// coordinates: [From, To) measured from the column's left edge.
type span struct {
	From int
	To   int
}

// clipColumn intersects column col with the horizontal viewport
// [scrollLeft, scrollLeft+width).
func clipColumn(l *grid.Layout, col, scrollLeft, width int) span {
	x0 := l.XOffsetOf(col)
	x1 := x0 + l.WidthOf(col)
	from := max(x0, scrollLeft)
	to := min(x1, scrollLeft+width)
	if to < from {
		to = from
	}
	return span{From: from - x0, To: to - x0}
}

// fitCell renders text into exactly width terminal cells: control characters
// become spaces, the last cell is left as a gutter, and values that do not fit
// are truncated with an ellipsis.
func fitCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	content := width
	if width > 1 {
		content = width - 1
	}
	if runewidth.StringWidth(text) > content {
		text = runewidth.Truncate(text, content, truncationTail)
	}
	return runewidth.FillRight(text, width)
}

// cutCells returns the display cells [from, to) of s. Wide runes straddling
// either edge are replaced by spaces so the result is exactly to-from cells.
func cutCells(s string, from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	pos := 0
	for _, r := range s {
		if pos >= to {
			break
		}
		w := runewidth.RuneWidth(r)
		end := pos + w
		switch {
		case w == 0:
			if pos > from {
				b.WriteRune(r)
			}
		case pos >= from && end <= to:
			b.WriteRune(r)
		case end > from:
			// partially visible wide rune
			b.WriteString(strings.Repeat(" ", min(end, to)-max(pos, from)))
		}
		pos = end
	}
	if pos < to {
		b.WriteString(strings.Repeat(" ", to-max(pos, from)))
	}
	return b.String()
}

// NormalizeURL prefixes scheme-less links with https://.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// hyperlink wraps text in an OSC 8 terminal hyperlink.
func hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
