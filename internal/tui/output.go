package tui

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

// OutputMode selects between the interactive grid and one-shot text output.
type OutputMode int

const (
	OutputModePlain OutputMode = iota
	OutputModeInteractive
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	if m == OutputModeInteractive {
		return "interactive"
	}
	return "plain"
}

// DetectOutputMode returns OutputModeInteractive only when plain output is
// not forced and both stdin and stdout are terminals.
func DetectOutputMode(forcePlain bool, stdin, stdout *os.File) OutputMode {
	if forcePlain || stdin == nil || stdout == nil {
		return OutputModePlain
	}
	if !term.IsTerminal(int(stdin.Fd())) || !term.IsTerminal(int(stdout.Fd())) {
		return OutputModePlain
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of f, or fallback when f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// PlainOptions configures RenderPlain.
type PlainOptions struct {
	Layout     *grid.Layout
	RowHeight  int
	Width      int
	Rows       int
	ScrollLeft int
	Logger     zerolog.Logger
}

// RenderPlain draws the header band and the first opts.Rows rows of ds through
// the same windowed renderer as the interactive grid, without styling.
func RenderPlain(ds *profile.Dataset, opts PlainOptions) string {
	m := NewGridModel(GridOptions{
		Layout:    opts.Layout,
		RowHeight: opts.RowHeight,
		Plain:     true,
		Logger:    opts.Logger,
	})
	m.SetDataset(ds)

	rows := opts.Rows
	if rows <= 0 || rows > ds.Len() {
		rows = ds.Len()
	}
	height := max(rows*m.rowHeight, minGridHeight)
	m.SetSize(opts.Width, height+headerHeight)
	m.ScrollTo(0, opts.ScrollLeft)

	lines := strings.Split(m.View(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
