package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridscope/gridscope/internal/logging"
	"github.com/gridscope/gridscope/internal/table"
)

// ViewState is the shell's top-level state.
type ViewState int

const (
	// StateLoading shows the spinner while the dataset is fetched.
	StateLoading ViewState = iota
	// StateBrowse is the interactive table view.
	StateBrowse
	// StateQuitting renders nothing while the program exits.
	StateQuitting
	// StateError shows a load failure.
	StateError
)

// inputMode distinguishes what the text input edits.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputFilter
)

// Layout chrome constants.
const (
	// chromeHeight is the number of terminal rows consumed outside the
	// table body: title, status, header (with border), and footer.
	chromeHeight = 6

	defaultWidth  = 100
	defaultHeight = 30
	minBodyHeight = 3

	// columnResizeStep is the width delta applied by the +/- keys.
	columnResizeStep = 2

	// filterInputCharLimit bounds search/filter input length.
	filterInputCharLimit = 128
)

// Fetcher loads the engine asynchronously while the spinner runs. It should
// honor ctx cancellation.
type Fetcher[T any] func(ctx context.Context) (*table.Engine[T], error)

// loadedMsg is sent when a Fetcher completes.
type loadedMsg[T any] struct {
	engine *table.Engine[T]
	err    error
}

// Model is the Bubble Tea shell around a table engine. The engine owns all
// table state; the model owns only terminal concerns: cursor, focused
// column, input mode, and dimensions.
type Model[T any] struct {
	ctx    context.Context
	state  ViewState
	engine *table.Engine[T]
	title  string

	// cursor is the row the user is on, as a position in the current
	// filtered+sorted sequence. colCursor is the focused column index.
	cursor    int
	colCursor int

	width  int
	height int

	mode      inputMode
	input     textinput.Model
	filterCol string

	loading  spinner.Model
	fetchCmd tea.Cmd

	err error
}

// New wraps an already-constructed engine.
func New[T any](ctx context.Context, title string, engine *table.Engine[T]) *Model[T] {
	m := &Model[T]{
		ctx:    ctx,
		state:  StateBrowse,
		engine: engine,
		title:  title,
		input:  newInput(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.syncViewport()
	return m
}

// NewWithLoading starts in the loading state and builds the engine from the
// fetcher's result.
func NewWithLoading[T any](ctx context.Context, title string, fetch Fetcher[T]) *Model[T] {
	m := &Model[T]{
		ctx:     ctx,
		state:   StateLoading,
		title:   title,
		input:   newInput(),
		loading: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.fetchCmd = func() tea.Msg {
		engine, err := fetch(ctx)
		return loadedMsg[T]{engine: engine, err: err}
	}
	return m
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = filterInputCharLimit
	return ti
}

// Init starts the spinner and fetch when loading.
func (m *Model[T]) Init() tea.Cmd {
	if m.state == StateLoading {
		return tea.Batch(m.loading.Tick, m.fetchCmd)
	}
	return nil
}

// Update handles terminal events and routes key input by state and mode.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case loadedMsg[T]:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, tea.Quit
		}
		m.engine = msg.engine
		m.state = StateBrowse
		m.syncViewport()
		return m, nil
	}

	switch m.state {
	case StateLoading:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	case StateBrowse:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	default:
		return m, nil
	}
}

// updateBrowse handles navigation and table operations.
//
//nolint:gocognit // One branch per key binding.
func (m *Model[T]) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.state = StateQuitting
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(keyMsg, keys.Down):
		m.moveCursor(1)
	case key.Matches(keyMsg, keys.PageUp):
		m.moveCursor(-m.bodyHeight())
	case key.Matches(keyMsg, keys.PageDown):
		m.moveCursor(m.bodyHeight())
	case key.Matches(keyMsg, keys.Home):
		m.setCursor(0)
	case key.Matches(keyMsg, keys.End):
		m.setCursor(m.engine.Len() - 1)

	case key.Matches(keyMsg, keys.PrevColumn):
		m.moveColumnCursor(-1)
	case key.Matches(keyMsg, keys.NextColumn):
		m.moveColumnCursor(1)
	case key.Matches(keyMsg, keys.ScrollLeft):
		m.scrollColumns(-1)
	case key.Matches(keyMsg, keys.ScrollRight):
		m.scrollColumns(1)

	case key.Matches(keyMsg, keys.Search):
		if m.engine.Searchable() {
			m.mode = inputSearch
			m.input.SetValue(m.engine.Search())
			m.input.Placeholder = "Search all columns..."
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.Filter):
		if col, ok := m.focusedColumn(); ok && m.engine.Filterable() && col.Filterable {
			m.mode = inputFilter
			m.filterCol = col.ID
			m.input.SetValue(m.engine.ColumnFilter(col.ID))
			m.input.Placeholder = "Filter " + col.Header + "..."
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.Sort):
		if col, ok := m.focusedColumn(); ok {
			m.engine.ToggleSort(col.ID)
			m.clampCursor()
		}

	case key.Matches(keyMsg, keys.Select):
		m.engine.SelectRow(m.cursor, !m.engine.IsSelected(m.cursor))
	case key.Matches(keyMsg, keys.SelectAll):
		m.engine.SelectAll(true)
	case key.Matches(keyMsg, keys.ClearSel):
		m.engine.SelectAll(false)

	case key.Matches(keyMsg, keys.Widen):
		m.resizeFocusedColumn(columnResizeStep)
	case key.Matches(keyMsg, keys.Narrow):
		m.resizeFocusedColumn(-columnResizeStep)

	case key.Matches(keyMsg, keys.Activate):
		m.engine.ClickRow(m.cursor)
	}

	return m, nil
}

// updateInput handles the search/filter text input. Edits apply live so the
// table narrows as the user types; enter or esc leaves input mode.
func (m *Model[T]) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "esc":
			m.mode = inputNone
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput()
	return m, cmd
}

// applyInput pushes the current input value into the engine.
func (m *Model[T]) applyInput() {
	switch m.mode {
	case inputSearch:
		m.engine.SetSearch(m.input.Value())
	case inputFilter:
		m.engine.SetColumnFilter(m.filterCol, m.input.Value())
	default:
		return
	}
	m.clampCursor()
	logging.FromContext(m.ctx).Debug().
		Int("rows", m.engine.Len()).
		Msg("query updated")
}

// Engine exposes the wrapped engine, mainly for the plain renderer and
// tests.
func (m *Model[T]) Engine() *table.Engine[T] {
	return m.engine
}

// Cursor returns the current cursor position.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// FocusedColumnIndex returns the focused column index.
func (m *Model[T]) FocusedColumnIndex() int {
	return m.colCursor
}

// Err returns the load failure, if any.
func (m *Model[T]) Err() error {
	return m.err
}

// moveCursor shifts the cursor and scrolls the engine window to keep it
// visible.
func (m *Model[T]) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model[T]) setCursor(pos int) {
	last := m.engine.Len() - 1
	if pos > last {
		pos = last
	}
	if pos < 0 {
		pos = 0
	}
	m.cursor = pos
	m.engine.SetScrollTop(m.engine.ScrollToRow(m.cursor))
}

// clampCursor keeps the cursor valid after the sequence shrinks.
func (m *Model[T]) clampCursor() {
	m.setCursor(m.cursor)
}

func (m *Model[T]) moveColumnCursor(delta int) {
	last := len(m.engine.Columns()) - 1
	next := m.colCursor + delta
	if next > last {
		next = last
	}
	if next < 0 {
		next = 0
	}
	m.colCursor = next
	m.ensureColumnVisible()
}

// focusedColumn returns the column under the column cursor.
func (m *Model[T]) focusedColumn() (table.Column[T], bool) {
	cols := m.engine.Columns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return table.Column[T]{}, false
	}
	return cols[m.colCursor], true
}

func (m *Model[T]) resizeFocusedColumn(delta float64) {
	col, ok := m.focusedColumn()
	if !ok {
		return
	}
	m.engine.ResizeColumn(col.ID, m.engine.ColumnWidth(col.ID)+delta)
}

// bodyHeight is the number of terminal rows available to table rows.
func (m *Model[T]) bodyHeight() int {
	h := m.height - chromeHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// syncViewport pushes terminal dimensions into the engine. One terminal row
// is one engine size unit.
func (m *Model[T]) syncViewport() {
	if m.engine == nil {
		return
	}
	m.engine.SetViewportHeight(float64(m.bodyHeight()))
	m.engine.SetScrollTop(m.engine.ScrollToRow(m.cursor))
}
