package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/profgrid/internal/export"
	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

const (
	defaultWidth  = 120
	defaultHeight = 30

	// chromeHeight is the title line plus the two footer lines.
	chromeHeight  = 3
	minGridHeight = 2
)

// ViewState is the lifecycle state of AppModel.
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateReady
	ViewStateQuitting
)

// DatasetLoadedMsg carries the result of a (re)load.
type DatasetLoadedMsg struct {
	Dataset *profile.Dataset
	Err     error
}

// FilesChangedMsg is sent when a watched source file changes.
type FilesChangedMsg struct {
	Event profile.ChangeEvent
}

// ExportDoneMsg carries the result of an export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// LoadFunc produces a fresh dataset.
type LoadFunc func(ctx context.Context) (*profile.Dataset, error)

// ExportFunc writes rows (nil for all) of ds and returns the written path.
type ExportFunc func(ds *profile.Dataset, layout *grid.Layout, rows []int) (string, error)

// AppOptions configures AppModel.
type AppOptions struct {
	Title string
	Grid  GridOptions

	// Dataset is shown immediately. When nil, Init calls Load.
	Dataset *profile.Dataset

	Load   LoadFunc
	Export ExportFunc

	// Changes triggers a reload on every event. Optional.
	Changes <-chan profile.ChangeEvent
}

// selectionSummary is shared by all copies of an AppModel and updated by
// the grid's selection callback.
type selectionSummary struct {
	cells int
	rows  int
}

// AppModel is the full-screen results application around a GridModel.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	ctx   context.Context
	state ViewState
	title string
	grid  *GridModel

	width  int
	height int

	status    string
	statusErr bool
	selection *selectionSummary

	prompt     textinput.Model
	showPrompt bool
	help       help.Model
	keys       AppKeyMap
	printer    *message.Printer

	load    LoadFunc
	export  ExportFunc
	changes <-chan profile.ChangeEvent
	logger  zerolog.Logger
}

// NewAppModel creates the application model.
func NewAppModel(ctx context.Context, opts AppOptions) AppModel {
	summary := &selectionSummary{}
	gridOpts := opts.Grid
	hostCallback := gridOpts.OnSelectionChange
	gridOpts.OnSelectionChange = func(selected []grid.CellKey) {
		summary.cells = len(selected)
		summary.rows = countRows(selected)
		if hostCallback != nil {
			hostCallback(selected)
		}
	}

	m := AppModel{
		ctx:       ctx,
		state:     ViewStateLoading,
		title:     opts.Title,
		grid:      NewGridModel(gridOpts),
		width:     defaultWidth,
		height:    defaultHeight,
		selection: summary,
		prompt:    newPrompt(),
		help:      help.New(),
		keys:      DefaultAppKeyMap(),
		printer:   message.NewPrinter(language.English),
		load:      opts.Load,
		export:    opts.Export,
		changes:   opts.Changes,
		logger:    opts.Grid.Logger,
	}
	m.resize()
	if opts.Dataset != nil {
		m.grid.SetDataset(opts.Dataset)
		m.state = ViewStateReady
	}
	return m
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Go to row: "
	ti.Placeholder = "1"
	ti.CharLimit = 12
	return ti
}

// Grid returns the wrapped grid controller.
func (m AppModel) Grid() *GridModel { return m.grid }

// State returns the lifecycle state.
func (m AppModel) State() ViewState { return m.state }

// Status returns the status line text.
func (m AppModel) Status() string { return m.status }

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.state == ViewStateLoading {
		cmds = append(cmds, m.loadCmd())
	}
	cmds = append(cmds, m.waitForChange())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case DatasetLoadedMsg:
		return m.handleLoaded(msg)
	case FilesChangedMsg:
		m.logger.Info().Strs("paths", msg.Event.Paths).Msg("source files changed")
		m.setStatus("Reloading...", false)
		return m, tea.Batch(m.loadCmd(), m.waitForChange())
	case ExportDoneMsg:
		return m.handleExported(msg)
	case tea.MouseMsg:
		// grid coordinates start below the title line
		msg.Y--
		m.grid.Update(msg)
		return m, nil
	case tea.KeyMsg:
		if m.showPrompt {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.GoTo):
		m.showPrompt = true
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reload):
		if m.load == nil {
			return m, nil
		}
		m.setStatus("Reloading...", false)
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	}
	m.grid.Update(msg)
	return m, nil
}

func (m AppModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		row, err := strconv.Atoi(value)
		if err != nil || row < 1 || row > m.grid.RowCount() {
			m.setStatus(m.printer.Sprintf("Row must be between 1 and %d", m.grid.RowCount()), true)
			return m, nil
		}
		m.grid.GoToRow(row - 1)
		m.setStatus("", false)
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *AppModel) closePrompt() {
	m.showPrompt = false
	m.prompt.Blur()
}

func (m AppModel) handleLoaded(msg DatasetLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error().Err(msg.Err).Msg("loading dataset failed")
		m.setStatus("Load failed: "+msg.Err.Error(), true)
		if m.state == ViewStateLoading {
			m.state = ViewStateReady
		}
		return m, nil
	}
	m.grid.SetDataset(msg.Dataset)
	m.state = ViewStateReady
	m.setStatus(m.printer.Sprintf("Loaded %d records", msg.Dataset.Len()), false)
	return m, nil
}

func (m AppModel) handleExported(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error().Err(msg.Err).Msg("export failed")
		m.setStatus("Export failed: "+msg.Err.Error(), true)
		return m, nil
	}
	m.logger.Info().Str("path", msg.Path).Msg("export written")
	m.setStatus("Exported to "+msg.Path, false)
	return m, nil
}

func (m *AppModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m AppModel) loadCmd() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		ds, err := load(ctx)
		return DatasetLoadedMsg{Dataset: ds, Err: err}
	}
}

func (m AppModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		ev, ok := <-changes
		if !ok {
			return nil
		}
		return FilesChangedMsg{Event: ev}
	}
}

// exportCmd snapshots the selected rows on the UI goroutine; the store is
// not safe to read from the command goroutine.
func (m AppModel) exportCmd() tea.Cmd {
	if m.export == nil {
		return nil
	}
	ds, layout := m.grid.Dataset(), m.grid.Layout()
	rows := export.SelectedRows(m.grid.Selection())
	fn := m.export
	return func() tea.Msg {
		path, err := fn(ds, layout, rows)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (m *AppModel) resize() {
	helpLines := 1
	if m.help.ShowAll {
		for _, column := range m.keys.FullHelp() {
			helpLines = max(helpLines, len(column))
		}
	}
	h := max(m.height-chromeHeight-helpLines, minGridHeight)
	m.help.Width = m.width
	m.grid.SetSize(m.width, h)
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	if m.state == ViewStateLoading {
		return TitleStyle.Render(m.titleText()) + "\n\nLoading profiles..."
	}

	bottom := m.help.View(m.keys)
	if m.showPrompt {
		bottom = m.prompt.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(m.titleText()),
		m.grid.View(),
		m.footer(),
		bottom,
	)
}

func (m AppModel) titleText() string {
	if m.title == "" {
		return "profgrid"
	}
	return "profgrid · " + m.title
}

func (m AppModel) footer() string {
	parts := []string{m.printer.Sprintf("%d records", m.grid.RowCount())}
	if m.selection.cells > 0 {
		parts = append(parts, SelectionCountStyle.Render(
			m.printer.Sprintf("%d cells selected (%d rows)", m.selection.cells, m.selection.rows)))
	}
	if m.status != "" {
		style := StatusStyle
		if m.statusErr {
			style = ErrorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	return FooterStyle.Width(max(m.width, 1)).Render(strings.Join(parts, "  ·  "))
}

func countRows(keys []grid.CellKey) int {
	n := 0
	for i, k := range keys {
		// keys arrive row-major
		if i == 0 || keys[i-1].Row != k.Row {
			n++
		}
	}
	return n
}
