package table

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Construction defaults, applied when the corresponding option is not set.
const (
	// DefaultHeight is the total component height.
	DefaultHeight = 600
	// DefaultRowHeight is the uniform row height used by the windowing
	// calculator unless a per-row size function overrides it.
	DefaultRowHeight = 52
	// DefaultOverscan is the number of extra rows rendered beyond the
	// visible range on each side.
	DefaultOverscan = 10
)

// Configuration errors reported by New. Precondition violations fail fast at
// construction time instead of surfacing during recomputation.
var (
	// ErrNoColumns is returned when no columns are declared.
	ErrNoColumns = errors.New("at least one column is required")
	// ErrDuplicateColumnID is returned when two columns share an id.
	ErrDuplicateColumnID = errors.New("duplicate column id")
	// ErrInvalidHeight is returned for a non-positive component height.
	ErrInvalidHeight = errors.New("height must be positive")
	// ErrInvalidRowHeight is returned for a non-positive row height.
	ErrInvalidRowHeight = errors.New("row height must be positive")
	// ErrInvalidOverscan is returned for a negative overscan.
	ErrInvalidOverscan = errors.New("overscan must not be negative")
)

// Engine is a virtual-scrolling table instance. It owns the query, viewport,
// selection, and layout state for one table; hosts observe that state through
// read accessors and callbacks and never mutate it directly.
type Engine[T any] struct {
	id  ulid.ULID
	log zerolog.Logger

	data    []T
	columns []Column[T]

	// Feature toggles.
	searchable bool
	filterable bool
	sortable   bool
	selectable bool

	// Viewport state.
	height    float64
	rowHeight float64
	overscan  int
	scrollTop float64
	scrollX   float64

	// rowSize, when set, overrides the uniform rowHeight with a per-row
	// size and switches windowing to the prefix-sum path.
	rowSize func(index int, row T) float64

	query     QueryState
	selection Selection
	layout    *Layout

	// Host callbacks.
	onRowClick    func(row T, index int)
	onRowsSelect  func(rows []T)
	renderActions func(row T, index int) string

	// Memoized pipeline stages. filtered caches search+filter output,
	// view caches the sorted sequence, offsets caches the prefix sums for
	// variable row sizes. Each is invalidated only by the stimuli upstream
	// of it, so a pure scroll event recomputes nothing here.
	filtered      []T
	filteredValid bool
	view          []T
	viewValid     bool
	offsets       offsetIndex
	offsetsValid  bool
}

// Option configures an Engine at construction time.
type Option[T any] func(*Engine[T])

// WithData sets the source dataset.
func WithData[T any](data []T) Option[T] {
	return func(e *Engine[T]) { e.data = data }
}

// WithColumns sets the column declarations; their order is the display order.
func WithColumns[T any](columns []Column[T]) Option[T] {
	return func(e *Engine[T]) { e.columns = columns }
}

// WithHeight sets the total component height.
func WithHeight[T any](height float64) Option[T] {
	return func(e *Engine[T]) { e.height = height }
}

// WithRowHeight sets the uniform row height.
func WithRowHeight[T any](rowHeight float64) Option[T] {
	return func(e *Engine[T]) { e.rowHeight = rowHeight }
}

// WithRowSize sets a per-row size function, replacing the uniform row height
// for windowing purposes.
func WithRowSize[T any](size func(index int, row T) float64) Option[T] {
	return func(e *Engine[T]) { e.rowSize = size }
}

// WithOverscan sets the number of extra rows rendered on each side of the
// visible range.
func WithOverscan[T any](overscan int) Option[T] {
	return func(e *Engine[T]) { e.overscan = overscan }
}

// WithSearchable toggles the free-text search stage.
func WithSearchable[T any](searchable bool) Option[T] {
	return func(e *Engine[T]) { e.searchable = searchable }
}

// WithFilterable toggles per-column filters.
func WithFilterable[T any](filterable bool) Option[T] {
	return func(e *Engine[T]) { e.filterable = filterable }
}

// WithSortable toggles sorting.
func WithSortable[T any](sortable bool) Option[T] {
	return func(e *Engine[T]) { e.sortable = sortable }
}

// WithSelectable toggles row selection.
func WithSelectable[T any](selectable bool) Option[T] {
	return func(e *Engine[T]) { e.selectable = selectable }
}

// WithRowClick registers the callback invoked synchronously on row
// activation.
func WithRowClick[T any](fn func(row T, index int)) Option[T] {
	return func(e *Engine[T]) { e.onRowClick = fn }
}

// WithRowsSelect registers the callback invoked synchronously whenever the
// selection set changes, receiving the materialized selected rows.
func WithRowsSelect[T any](fn func(rows []T)) Option[T] {
	return func(e *Engine[T]) { e.onRowsSelect = fn }
}

// WithActions registers the optional per-row action slot renderer.
func WithActions[T any](fn func(row T, index int) string) Option[T] {
	return func(e *Engine[T]) { e.renderActions = fn }
}

// WithLogger attaches a structured logger to the instance. Without it the
// engine stays silent.
func WithLogger[T any](log zerolog.Logger) Option[T] {
	return func(e *Engine[T]) { e.log = log }
}

// New constructs an Engine and validates its configuration: at least one
// column, unique column ids, and positive viewport dimensions.
func New[T any](opts ...Option[T]) (*Engine[T], error) {
	e := &Engine[T]{
		id:         ulid.Make(),
		log:        zerolog.Nop(),
		searchable: true,
		filterable: true,
		sortable:   true,
		height:     DefaultHeight,
		rowHeight:  DefaultRowHeight,
		overscan:   DefaultOverscan,
		selection:  newSelection(),
		query:      QueryState{Filters: make(map[string]string)},
	}
	for _, opt := range opts {
		opt(e)
	}

	if len(e.columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]struct{}, len(e.columns))
	for _, col := range e.columns {
		if _, dup := seen[col.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnID, col.ID)
		}
		seen[col.ID] = struct{}{}
	}
	if e.height <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidHeight, e.height)
	}
	if e.rowHeight <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRowHeight, e.rowHeight)
	}
	if e.overscan < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOverscan, e.overscan)
	}

	e.layout = newLayout(e.columns, e.selectable, e.renderActions != nil)
	e.log = e.log.With().Str("table_id", e.id.String()).Logger()
	return e, nil
}

// ID returns the instance's ULID, used for log correlation.
func (e *Engine[T]) ID() ulid.ULID {
	return e.id
}

// Columns returns the column declarations in display order.
func (e *Engine[T]) Columns() []Column[T] {
	return e.columns
}

// SetData replaces the source dataset and invalidates every downstream
// stage. The selection keeps its positional indices, pruned to the new
// sequence length.
func (e *Engine[T]) SetData(data []T) {
	e.data = data
	e.invalidateFiltered()
}

// TotalRows returns the size of the unfiltered dataset.
func (e *Engine[T]) TotalRows() int {
	return len(e.data)
}

// Rows returns the current filtered+sorted sequence, recomputing it only if
// a query or data stimulus invalidated the memoized result.
func (e *Engine[T]) Rows() []T {
	if !e.filteredValid {
		e.filtered = applyFilters(
			applySearch(e.data, e.columns, e.query.Search),
			e.columns, e.query.Filters)
		e.filteredValid = true
	}
	if !e.viewValid {
		e.view = applySort(e.filtered, e.columns, e.query.Sort)
		e.viewValid = true
		e.offsetsValid = false
		e.selection.Prune(len(e.view))
	}
	return e.view
}

// Len returns the length of the current filtered+sorted sequence.
func (e *Engine[T]) Len() int {
	return len(e.Rows())
}

// Row returns the row at the given position in the current sequence.
func (e *Engine[T]) Row(index int) (T, bool) {
	rows := e.Rows()
	if index < 0 || index >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[index], true
}

// SetSearch updates the free-text search term. Setting the same term again
// is a no-op so pure re-renders never re-run the pipeline.
func (e *Engine[T]) SetSearch(term string) {
	if !e.searchable || term == e.query.Search {
		return
	}
	e.query.Search = term
	e.invalidateFiltered()
}

// Search returns the current search term.
func (e *Engine[T]) Search() string {
	return e.query.Search
}

// SetColumnFilter updates one column's substring filter. An empty value
// removes the filter. Unknown and non-filterable column ids are ignored.
func (e *Engine[T]) SetColumnFilter(columnID, value string) {
	if !e.filterable {
		return
	}
	col := e.column(columnID)
	if col == nil || !col.Filterable {
		e.log.Debug().Str("column", columnID).Msg("ignoring filter for unknown or non-filterable column")
		return
	}
	if e.query.Filters[columnID] == value {
		return
	}
	if value == "" {
		delete(e.query.Filters, columnID)
	} else {
		e.query.Filters[columnID] = value
	}
	e.invalidateFiltered()
}

// ColumnFilter returns the current filter value for the column.
func (e *Engine[T]) ColumnFilter(columnID string) string {
	return e.query.Filters[columnID]
}

// SetSort replaces the sort state. An empty key clears sorting. Unknown and
// non-sortable columns are ignored.
func (e *Engine[T]) SetSort(columnID string, direction SortDirection) {
	if !e.sortable {
		return
	}
	if columnID != "" {
		col := e.column(columnID)
		if col == nil || !col.Sortable {
			e.log.Debug().Str("column", columnID).Msg("ignoring sort on unknown or non-sortable column")
			return
		}
	}
	next := SortState{Key: columnID, Direction: direction}
	if e.query.Sort == next {
		return
	}
	e.query.Sort = next
	e.invalidateView()
}

// ToggleSort cycles the column through ascending, descending, and unsorted,
// the usual header-click behavior. Sorting a different column starts over at
// ascending.
func (e *Engine[T]) ToggleSort(columnID string) {
	if e.query.Sort.Key != columnID {
		e.SetSort(columnID, SortAsc)
		return
	}
	if e.query.Sort.Direction == SortAsc {
		e.SetSort(columnID, SortDesc)
		return
	}
	e.SetSort("", SortAsc)
}

// Sort returns the current sort state.
func (e *Engine[T]) Sort() SortState {
	return e.query.Sort
}

// Query returns a snapshot of the current query state.
func (e *Engine[T]) Query() QueryState {
	return e.query.clone()
}

// SetScrollTop updates the vertical scroll offset. Scrolling recomputes only
// the window, never the query pipeline.
func (e *Engine[T]) SetScrollTop(scrollTop float64) {
	e.scrollTop = scrollTop
}

// ScrollTop returns the current vertical scroll offset, clamped to the valid
// range for the current sequence.
func (e *Engine[T]) ScrollTop() float64 {
	return clampScroll(e.scrollTop, e.totalSize(), e.height)
}

// SetHorizontalScroll updates the shared horizontal scroll offset. Header
// and body both read it, which keeps them aligned without any subscription
// machinery.
func (e *Engine[T]) SetHorizontalScroll(offset float64) {
	if offset < 0 {
		offset = 0
	}
	e.scrollX = offset
}

// HorizontalScroll returns the shared horizontal scroll offset.
func (e *Engine[T]) HorizontalScroll() float64 {
	return e.scrollX
}

// SetViewportHeight updates the component height. Non-positive values are
// absorbed by the windowing clamp rather than raised here.
func (e *Engine[T]) SetViewportHeight(height float64) {
	e.height = height
}

// ViewportHeight returns the component height.
func (e *Engine[T]) ViewportHeight() float64 {
	return e.height
}

// RowHeight returns the uniform row height.
func (e *Engine[T]) RowHeight() float64 {
	return e.rowHeight
}

// Window computes the set of rows that must be rendered for the current
// scroll offset: the visible run expanded by overscan on both sides. With a
// uniform row height this is constant-time arithmetic; with a per-row size
// function it binary-searches memoized prefix sums.
func (e *Engine[T]) Window() Window {
	rows := e.Rows()
	if e.rowSize == nil {
		return computeUniformWindow(len(rows), e.rowHeight, e.height, e.scrollTop, e.overscan)
	}
	if !e.offsetsValid {
		e.offsets.rebuild(len(rows), func(i int) float64 { return e.rowSize(i, rows[i]) })
		e.offsetsValid = true
	}
	return e.offsets.window(e.height, e.scrollTop, e.overscan)
}

// ScrollToRow returns the scroll offset that brings the row into view,
// leaving the offset unchanged when the row is already fully visible.
func (e *Engine[T]) ScrollToRow(index int) float64 {
	rows := e.Rows()
	if index < 0 || index >= len(rows) {
		return e.scrollTop
	}
	var top, bottom float64
	if e.rowSize == nil {
		top = float64(index) * e.rowHeight
		bottom = top + e.rowHeight
	} else {
		if !e.offsetsValid {
			e.offsets.rebuild(len(rows), func(i int) float64 { return e.rowSize(i, rows[i]) })
			e.offsetsValid = true
		}
		top = e.offsets.offsets[index]
		bottom = e.offsets.offsets[index+1]
	}
	switch {
	case top < e.scrollTop:
		return top
	case bottom > e.scrollTop+e.height:
		return bottom - e.height
	default:
		return e.scrollTop
	}
}

// SelectRow adds or removes one position from the selection and notifies the
// host with the materialized selected rows.
func (e *Engine[T]) SelectRow(index int, checked bool) {
	if !e.selectable {
		return
	}
	if index < 0 || index >= e.Len() {
		return
	}
	e.selection.Set(index, checked)
	e.notifySelection()
}

// SelectAll selects every row of the current sequence, or empties the
// selection, and notifies the host either way.
func (e *Engine[T]) SelectAll(checked bool) {
	if !e.selectable {
		return
	}
	e.selection.SetAll(e.Len(), checked)
	e.notifySelection()
}

// ClearSelection empties the selection without notifying the host.
func (e *Engine[T]) ClearSelection() {
	e.selection.Clear()
}

// IsSelected reports whether the row at the given position is selected.
func (e *Engine[T]) IsSelected(index int) bool {
	return e.selection.Has(index)
}

// SelectionCount returns the number of selected rows.
func (e *Engine[T]) SelectionCount() int {
	e.selection.Prune(e.Len())
	return e.selection.Count()
}

// SelectedRows materializes the selected positions against the current
// sequence.
func (e *Engine[T]) SelectedRows() []T {
	rows := e.Rows()
	e.selection.Prune(len(rows))
	indices := e.selection.Indices()
	out := make([]T, 0, len(indices))
	for _, i := range indices {
		out = append(out, rows[i])
	}
	return out
}

// ClickRow fires the row-activation callback with the materialized row.
func (e *Engine[T]) ClickRow(index int) {
	row, ok := e.Row(index)
	if !ok || e.onRowClick == nil {
		return
	}
	e.onRowClick(row, index)
}

// ResizeColumn stores a new width for the column, clamped to its declared
// bounds. Invalid input is absorbed as a no-op.
func (e *Engine[T]) ResizeColumn(columnID string, width float64) {
	e.layout.Resize(columnID, width)
}

// ColumnWidth returns the current width of the column.
func (e *Engine[T]) ColumnWidth(columnID string) float64 {
	return e.layout.Width(columnID)
}

// TotalWidth returns the full layout width shared by header and body.
func (e *Engine[T]) TotalWidth() float64 {
	return e.layout.TotalWidth()
}

// Selectable reports whether row selection is enabled.
func (e *Engine[T]) Selectable() bool {
	return e.selectable
}

// Searchable reports whether free-text search is enabled.
func (e *Engine[T]) Searchable() bool {
	return e.searchable
}

// Filterable reports whether per-column filters are enabled.
func (e *Engine[T]) Filterable() bool {
	return e.filterable
}

// Sortable reports whether sorting is enabled.
func (e *Engine[T]) Sortable() bool {
	return e.sortable
}

// RenderCell renders one cell, routing through the column's custom renderer
// when present. Renderer invocations are guarded: a panic is logged and the
// cell degrades to a placeholder so one caller-supplied renderer cannot
// crash the whole table.
func (e *Engine[T]) RenderCell(col Column[T], row T, index int) (out string) {
	value := cellValue(col, row)
	if col.Renderer == nil {
		return formatValue(value)
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().
				Str("column", col.ID).
				Int("row", index).
				Interface("panic", r).
				Msg("cell renderer panicked")
			out = renderPlaceholder
		}
	}()
	return col.Renderer(value, row, index)
}

// RenderActions renders the per-row action slot, guarded the same way as
// custom cell renderers. It returns "" when no actions renderer is set.
func (e *Engine[T]) RenderActions(row T, index int) (out string) {
	if e.renderActions == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Int("row", index).Interface("panic", r).Msg("actions renderer panicked")
			out = renderPlaceholder
		}
	}()
	return e.renderActions(row, index)
}

// HasActions reports whether a per-row actions renderer is configured.
func (e *Engine[T]) HasActions() bool {
	return e.renderActions != nil
}

// renderPlaceholder substitutes for a cell whose renderer panicked.
const renderPlaceholder = "!"

// column finds a column declaration by id.
func (e *Engine[T]) column(columnID string) *Column[T] {
	for i := range e.columns {
		if e.columns[i].ID == columnID {
			return &e.columns[i]
		}
	}
	return nil
}

// totalSize returns the current total scrollable extent.
func (e *Engine[T]) totalSize() float64 {
	rows := e.Rows()
	if e.rowSize == nil {
		return float64(len(rows)) * e.rowHeight
	}
	if !e.offsetsValid {
		e.offsets.rebuild(len(rows), func(i int) float64 { return e.rowSize(i, rows[i]) })
		e.offsetsValid = true
	}
	return e.offsets.total()
}

// invalidateFiltered marks the search+filter stage and everything downstream
// of it stale.
func (e *Engine[T]) invalidateFiltered() {
	e.filteredValid = false
	e.invalidateView()
}

// invalidateView marks the sorted sequence and the windowing offsets stale.
func (e *Engine[T]) invalidateView() {
	e.viewValid = false
	e.offsetsValid = false
}

// notifySelection reports the materialized selection to the host.
func (e *Engine[T]) notifySelection() {
	if e.onRowsSelect == nil {
		return
	}
	e.onRowsSelect(e.SelectedRows())
}
