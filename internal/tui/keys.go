package tui

import "github.com/charmbracelet/bubbles/key"

// GridKeyMap holds the bindings GridModel reacts to.
type GridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Toggle      key.Binding
	SelectRow   key.Binding
	Clear       key.Binding
}

// DefaultGridKeyMap returns the standard grid bindings.
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "first row")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "last row")),
		ScrollLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "scroll right")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle cell")),
		SelectRow:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "select row")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
	}
}

// AppKeyMap holds the application-level bindings. It implements help.KeyMap.
type AppKeyMap struct {
	Grid   GridKeyMap
	GoTo   key.Binding
	Reload key.Binding
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultAppKeyMap returns the standard application bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Grid:   DefaultGridKeyMap(),
		GoTo:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to row")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grid.Toggle, k.GoTo, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	g := k.Grid
	return [][]key.Binding{
		{g.Up, g.Down, g.Left, g.Right},
		{g.PageUp, g.PageDown, g.Top, g.Bottom},
		{g.ScrollLeft, g.ScrollRight, g.Toggle, g.SelectRow, g.Clear},
		{k.GoTo, k.Reload, k.Export, k.Help, k.Quit},
	}
}
