package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

const (
	// headerHeight is the number of lines the header band occupies.
	headerHeight = 1

	defaultRowHeight = 1
	defaultWheelStep = 3
)

// GridOptions configures a GridModel.
type GridOptions struct {
	// Layout is the column geometry. Required.
	Layout *grid.Layout

	// RowHeight is the height of every row in lines. Zero means 1.
	RowHeight int

	// LinkColumn names the column rendered as a hyperlink. Empty disables links.
	LinkColumn string

	// WheelStep is the number of lines one wheel notch scrolls. Zero means 3.
	WheelStep int

	// Overscan is the number of rows beyond each edge of the viewport that
	// are rendered ahead of time and kept in the line cache.
	Overscan int

	// Selection is the store the grid mutates. Nil means a fresh store.
	Selection *grid.SelectionStore

	// OnSelectionChange is called synchronously after every selection mutation.
	OnSelectionChange func(selected []grid.CellKey)

	// Plain disables all styling and hyperlinks.
	Plain bool

	Logger zerolog.Logger
}

// GridModel is the Bubble Tea controller of the windowed grid. It owns the
// dataset, the column layout, the selection, the scroll offsets and the
// keyboard cursor. Every scroll or resize recomputes the window, and View
// draws only the cells inside it.
type GridModel struct {
	layout    *grid.Layout
	dataset   *profile.Dataset
	selection *grid.SelectionStore
	onChange  func([]grid.CellKey)

	rowHeight  int
	wheelStep  int
	overscan   int
	linkColumn string
	linkCol    int

	// width and height are the body size, excluding the header band.
	width  int
	height int

	scrollTop  int
	scrollLeft int
	cursor     grid.CellKey
	window     grid.Window

	// lines caches rendered body lines by absolute line number. It is valid
	// for the current horizontal clip, cursor and selection only.
	lines map[int]string

	// toggled is the row of the Toggle in progress, or -1.
	toggled int

	header HeaderBand
	styles gridStyles
	plain  bool
	keys   GridKeyMap
	logger zerolog.Logger
}

// NewGridModel creates a grid with no data. It panics when opts.Layout is nil.
func NewGridModel(opts GridOptions) *GridModel {
	if opts.Layout == nil {
		panic("tui: GridOptions.Layout is required")
	}
	m := &GridModel{
		layout:     opts.Layout,
		dataset:    profile.NewDataset(nil),
		selection:  opts.Selection,
		onChange:   opts.OnSelectionChange,
		rowHeight:  opts.RowHeight,
		wheelStep:  opts.WheelStep,
		overscan:   max(opts.Overscan, 0),
		linkColumn: opts.LinkColumn,
		lines:      make(map[int]string),
		toggled:    -1,
		plain:      opts.Plain,
		keys:       DefaultGridKeyMap(),
		logger:     opts.Logger,
	}
	if m.rowHeight <= 0 {
		m.rowHeight = defaultRowHeight
	}
	if m.wheelStep <= 0 {
		m.wheelStep = defaultWheelStep
	}
	if m.selection == nil {
		m.selection = grid.NewSelectionStore()
	}
	m.styles = defaultGridStyles()
	if m.plain {
		m.styles = plainGridStyles()
	}
	m.header = HeaderBand{Style: m.styles.Header}
	m.selection.Observe(m.selectionChanged)
	m.resolveLinkColumn()
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *GridModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Mouse coordinates are relative to the grid's
// top-left corner, header band included.
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// SetSize sets the total size of the grid including the header band.
func (m *GridModel) SetSize(width, height int) {
	if max(width, 0) != m.width {
		m.invalidate()
	}
	m.width = max(width, 0)
	m.height = max(height-headerHeight, 0)
	m.clampScroll()
	m.recompute()
}

// SetDataset replaces the displayed records. The selection is cleared because
// cell keys are positional and would otherwise point at unrelated records.
func (m *GridModel) SetDataset(ds *profile.Dataset) {
	if ds == nil {
		ds = profile.NewDataset(nil)
	}
	prev := m.dataset
	m.dataset = ds
	m.invalidate()
	m.selection.Clear()
	m.clampCursor()
	m.clampScroll()
	m.recompute()
	m.logger.Info().
		Str("dataset_id", ds.ID.String()).
		Str("previous_id", prev.ID.String()).
		Int("records", ds.Len()).
		Msg("dataset replaced")
}

// SetLayout swaps the column geometry. It is a no-op when the columns are
// unchanged; otherwise the selection is cleared and geometry is rebuilt.
func (m *GridModel) SetLayout(l *grid.Layout) {
	if l == nil || l.SameColumns(m.layout) {
		return
	}
	m.layout = l
	m.invalidate()
	m.resolveLinkColumn()
	m.selection.Clear()
	m.clampCursor()
	m.clampScroll()
	m.recompute()
}

// ScrollTo moves the viewport to the given offsets, clamped to the content.
func (m *GridModel) ScrollTo(top, left int) {
	m.scrollTop = top
	m.setScrollLeft(left)
	m.clampScroll()
	m.recompute()
}

func (m *GridModel) setScrollLeft(left int) {
	if left != m.scrollLeft {
		m.invalidate()
	}
	m.scrollLeft = left
}

// ScrollBy moves the viewport by the given deltas.
func (m *GridModel) ScrollBy(dy, dx int) {
	m.ScrollTo(m.scrollTop+dy, m.scrollLeft+dx)
}

// GoToRow moves the cursor to row and scrolls it into view.
func (m *GridModel) GoToRow(row int) {
	m.moveCursor(row, m.cursor.Col)
}

// Toggle flips the selection of the cell at key when it is a data cell.
func (m *GridModel) Toggle(key grid.CellKey) bool {
	if !m.validCell(key) {
		return false
	}
	m.toggled = key.Row
	m.selection.Toggle(key)
	m.toggled = -1
	return true
}

// Dataset returns the displayed dataset.
func (m *GridModel) Dataset() *profile.Dataset { return m.dataset }

// Layout returns the column geometry.
func (m *GridModel) Layout() *grid.Layout { return m.layout }

// Selection returns the selection store.
func (m *GridModel) Selection() *grid.SelectionStore { return m.selection }

// Window returns the rows and columns currently rendered, overscan included.
func (m *GridModel) Window() grid.Window { return m.window }

// Cursor returns the keyboard cursor.
func (m *GridModel) Cursor() grid.CellKey { return m.cursor }

// ScrollTop returns the vertical scroll offset in lines.
func (m *GridModel) ScrollTop() int { return m.scrollTop }

// ScrollLeft returns the horizontal scroll offset in cells.
func (m *GridModel) ScrollLeft() int { return m.scrollLeft }

// RowCount returns the number of records.
func (m *GridModel) RowCount() int { return m.dataset.Len() }

// ColumnCount returns the number of columns.
func (m *GridModel) ColumnCount() int { return m.layout.Count() }

// SelectionCount returns the number of selected cells.
func (m *GridModel) SelectionCount() int { return m.selection.Len() }

//nolint:cyclop // One branch per binding.
func (m *GridModel) handleKey(msg tea.KeyMsg) {
	page := max(m.height/m.rowHeight, 1)
	c := m.cursor
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(c.Row-1, c.Col)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(c.Row+1, c.Col)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(c.Row, c.Col-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(c.Row, c.Col+1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(c.Row-page, c.Col)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(c.Row+page, c.Col)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(0, c.Col)
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.RowCount()-1, c.Col)
	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollColumns(-1)
	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollColumns(1)
	case key.Matches(msg, m.keys.Toggle):
		m.Toggle(c)
	case key.Matches(msg, m.keys.SelectRow):
		m.selectRow(c.Row)
	case key.Matches(msg, m.keys.Clear):
		if m.selection.Len() > 0 {
			m.selection.Clear()
		}
	}
}

func (m *GridModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.ScrollBy(0, -m.wheelStep)
		} else {
			m.ScrollBy(-m.wheelStep, 0)
		}
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.ScrollBy(0, m.wheelStep)
		} else {
			m.ScrollBy(m.wheelStep, 0)
		}
	case tea.MouseButtonWheelLeft:
		m.ScrollBy(0, -m.wheelStep)
	case tea.MouseButtonWheelRight:
		m.ScrollBy(0, m.wheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		k, ok := grid.CellAt(m.params(), msg.X, msg.Y-headerHeight)
		if !ok {
			return
		}
		m.setCursor(k)
		m.Toggle(k)
	}
}

// scrollColumns aligns the next (dir > 0) or previous column boundary with
// the left edge. A partially hidden first column counts as the previous one.
func (m *GridModel) scrollColumns(dir int) {
	if m.window.Cols.Empty() {
		return
	}
	first := m.window.Cols.Start
	switch {
	case dir > 0:
		first++
	case m.layout.XOffsetOf(first) == m.scrollLeft:
		first--
	}
	first = min(max(first, 0), m.layout.Count()-1)
	m.ScrollTo(m.scrollTop, m.layout.XOffsetOf(first))
}

func (m *GridModel) selectRow(row int) {
	if row < 0 || row >= m.RowCount() {
		return
	}
	keys := make([]grid.CellKey, m.layout.Count())
	for c := range keys {
		keys[c] = grid.CellKey{Row: row, Col: c}
	}
	m.selection.SetAll(keys)
}

// moveCursor places the cursor, clamped to the data, and scrolls the minimum
// distance needed to show it.
func (m *GridModel) moveCursor(row, col int) {
	if m.RowCount() == 0 || m.layout.Count() == 0 {
		return
	}
	row = min(max(row, 0), m.RowCount()-1)
	col = min(max(col, 0), m.layout.Count()-1)
	m.setCursor(grid.CellKey{Row: row, Col: col})

	top := row * m.rowHeight
	switch {
	case top < m.scrollTop:
		m.scrollTop = top
	case top+m.rowHeight > m.scrollTop+m.height:
		m.scrollTop = top + m.rowHeight - m.height
	}

	x0 := m.layout.XOffsetOf(col)
	x1 := x0 + m.layout.WidthOf(col)
	switch {
	case x0 < m.scrollLeft:
		m.setScrollLeft(x0)
	case x1 > m.scrollLeft+m.width:
		m.setScrollLeft(min(x0, x1-m.width))
	}

	m.clampScroll()
	m.recompute()
}

func (m *GridModel) validCell(k grid.CellKey) bool {
	return k.Row >= 0 && k.Row < m.RowCount() && k.Col >= 0 && k.Col < m.layout.Count()
}

func (m *GridModel) setCursor(k grid.CellKey) {
	if k != m.cursor {
		m.invalidateRow(m.cursor.Row)
		m.invalidateRow(k.Row)
	}
	m.cursor = k
}

func (m *GridModel) clampCursor() {
	m.setCursor(grid.CellKey{
		Row: min(m.cursor.Row, max(m.RowCount()-1, 0)),
		Col: min(m.cursor.Col, max(m.layout.Count()-1, 0)),
	})
}

func (m *GridModel) clampScroll() {
	m.scrollTop = min(max(m.scrollTop, 0), grid.MaxScrollTop(m.RowCount(), m.rowHeight, m.height))
	m.setScrollLeft(min(max(m.scrollLeft, 0), grid.MaxScrollLeft(m.layout, m.width)))
}

func (m *GridModel) invalidate() {
	clear(m.lines)
}

// invalidateRow drops the cached lines of one row.
func (m *GridModel) invalidateRow(row int) {
	for sub := range m.rowHeight {
		delete(m.lines, row*m.rowHeight+sub)
	}
}

func (m *GridModel) resolveLinkColumn() {
	m.linkCol = -1
	if m.linkColumn == "" || m.plain {
		return
	}
	if i, ok := m.layout.Index(m.linkColumn); ok {
		m.linkCol = i
	}
}

func (m *GridModel) params() grid.WindowParams {
	return grid.WindowParams{
		Viewport: grid.Viewport{
			Width:      m.width,
			Height:     m.height,
			ScrollLeft: m.scrollLeft,
			ScrollTop:  m.scrollTop,
		},
		RowHeight: m.rowHeight,
		RowCount:  m.RowCount(),
		Layout:    m.layout,
		Overscan:  m.overscan,
	}
}

func (m *GridModel) recompute() {
	m.window = grid.CalculateWindow(m.params())
}

// selectionChanged redraws only the toggled row when the change came from
// Toggle; SetAll, Clear and mutations made directly on the store drop the
// whole cache.
func (m *GridModel) selectionChanged(selected []grid.CellKey) {
	if m.toggled >= 0 {
		m.invalidateRow(m.toggled)
	} else {
		m.invalidate()
	}
	m.logger.Debug().Int("selected", len(selected)).Msg("selection changed")
	if m.onChange != nil {
		m.onChange(selected)
	}
}
