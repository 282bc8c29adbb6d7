// Package virtual computes which rows of a list or grid must be rendered.
//
// Both list and grid are virtualized over rows. In list and detail modes a
// row holds one item; in grid mode it holds Columns items. Every row has the
// per-mode height the renderer lays it out at, so offsets are estimates that
// hold exactly. The offset table is rebuilt whenever the column count, item
// count or mode changes, because row boundaries move.
package virtual

import (
	"sort"

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/view"
)

// Config holds the geometry inputs in pixels.
type Config struct {
	GridItemSize    int
	GridGap         int
	ListRowHeight   int
	DetailRowHeight int
	Overscan        int // extra rows on each side of the viewport
}

// DefaultConfig matches the browser's default layout.
func DefaultConfig() Config {
	return Config{GridItemSize: 160, GridGap: 8, ListRowHeight: 28, DetailRowHeight: 56, Overscan: 3}
}

// Columns returns max(1, floor((width+gap)/(item+gap))).
func Columns(width, item, gap int) int {
	if item+gap <= 0 || width <= 0 {
		return 1
	}
	if c := (width + gap) / (item + gap); c > 1 {
		return c
	}
	return 1
}

// RowCount returns ceil(n/cols).
func RowCount(n, cols int) int {
	if n <= 0 {
		return 0
	}
	if cols < 1 {
		cols = 1
	}
	return (n + cols - 1) / cols
}

// Geometry summarizes the current layout.
type Geometry struct {
	Mode          view.Mode
	Columns       int
	Rows          int
	ItemCount     int
	RowHeight     int
	ContentHeight int
}

// Row is one rendered row.
type Row struct {
	Index  int
	Offset int // top, in content pixels
	Height int
	Start  int // first item index
	End    int // one past the last item index
}

// Window is the contiguous run of rows to render.
type Window struct {
	Rows       []Row
	FirstIndex int // first item covered
	EndIndex   int // one past the last item covered
}

// Empty reports whether nothing needs rendering.
func (w Window) Empty() bool { return len(w.Rows) == 0 }

// Contains reports whether item index i is inside the window.
func (w Window) Contains(i int) bool { return i >= w.FirstIndex && i < w.EndIndex }

// Engine tracks container size, scroll position and row offsets.
type Engine struct {
	cfg      Config
	mode     view.Mode
	count    int
	width    int
	viewport int
	scroll   int

	cols       int
	offsets    []int // offsets[r] = top of row r; len = rows+1
	remeasures int

	onScroll func(row, offset int)
}

func NewEngine(cfg Config, mode view.Mode) *Engine {
	e := &Engine{cfg: cfg, mode: mode, cols: 1}
	e.remeasure()
	return e
}

// OnScroll sets the callback invoked by ScrollToIndex when the scroll offset
// has to change.
func (e *Engine) OnScroll(fn func(row, offset int)) {
	e.onScroll = fn
}

func (e *Engine) rowEstimate() int {
	switch e.mode {
	case view.Grid:
		return e.cfg.GridItemSize + e.cfg.GridGap
	case view.Detail:
		return e.cfg.DetailRowHeight
	default:
		return e.cfg.ListRowHeight
	}
}

func (e *Engine) columnsFor(mode view.Mode, width int) int {
	if mode != view.Grid {
		return 1
	}
	return Columns(width, e.cfg.GridItemSize, e.cfg.GridGap)
}

// SetWidth updates the container width. It reports whether the layout was
// re-measured, which only happens when the column count changes.
func (e *Engine) SetWidth(w int) bool {
	e.width = w
	return e.update(e.mode, e.count)
}

// SetCount updates the number of items.
func (e *Engine) SetCount(n int) bool {
	return e.update(e.mode, n)
}

// SetMode switches between list, detail and grid geometry.
func (e *Engine) SetMode(m view.Mode) bool {
	return e.update(m, e.count)
}

// SetViewport sets the visible height and scroll offset, clamping the offset.
func (e *Engine) SetViewport(height, scroll int) {
	e.viewport = height
	e.scroll = scroll
	e.clampScroll()
}

func (e *Engine) update(mode view.Mode, count int) bool {
	cols := e.columnsFor(mode, e.width)
	if mode == e.mode && count == e.count && cols == e.cols {
		return false
	}

	// Keep the first visible item at the top across the change.
	anchor := -1
	if e.count > 0 {
		anchor = e.rowAt(e.scroll) * e.cols
	}

	e.mode, e.count, e.cols = mode, count, cols
	e.remeasure()

	if anchor >= 0 && count > 0 {
		if anchor >= count {
			anchor = count - 1
		}
		e.scroll = e.offsets[anchor/e.cols]
	}
	e.clampScroll()
	return true
}

func (e *Engine) remeasure() {
	e.rebuildOffsets()
	e.remeasures++
	debug.Log(debug.LAYOUT, "remeasure: mode=%s cols=%d rows=%d", e.mode, e.cols, e.rows())
}

func (e *Engine) rows() int {
	return RowCount(e.count, e.cols)
}

func (e *Engine) rebuildOffsets() {
	n, h := e.rows(), e.rowEstimate()
	e.offsets = make([]int, n+1)
	for r := 0; r < n; r++ {
		e.offsets[r+1] = e.offsets[r] + h
	}
}

// Remeasures counts full re-measurements since creation.
func (e *Engine) Remeasures() int { return e.remeasures }

// rowAt returns the row containing content offset y.
func (e *Engine) rowAt(y int) int {
	n := e.rows()
	if n == 0 {
		return 0
	}
	// First row whose bottom is below y.
	r := sort.Search(n, func(i int) bool { return e.offsets[i+1] > y })
	if r >= n {
		r = n - 1
	}
	return r
}

func (e *Engine) contentHeight() int {
	return e.offsets[len(e.offsets)-1]
}

func (e *Engine) clampScroll() {
	limit := e.contentHeight() - e.viewport
	if limit < 0 {
		limit = 0
	}
	if e.scroll > limit {
		e.scroll = limit
	}
	if e.scroll < 0 {
		e.scroll = 0
	}
}

// Geometry returns the current layout summary.
func (e *Engine) Geometry() Geometry {
	return Geometry{
		Mode:          e.mode,
		Columns:       e.cols,
		Rows:          e.rows(),
		ItemCount:     e.count,
		RowHeight:     e.rowEstimate(),
		ContentHeight: e.contentHeight(),
	}
}

// Scroll returns the current scroll offset.
func (e *Engine) Scroll() int { return e.scroll }

// RowOf maps an item index to its row.
func (e *Engine) RowOf(index int) int {
	if e.cols <= 1 {
		return index
	}
	return index / e.cols
}

// RowBounds returns the item range [start, end) of row r.
func (e *Engine) RowBounds(r int) (start, end int) {
	start = r * e.cols
	end = start + e.cols
	if end > e.count {
		end = e.count
	}
	return start, end
}

// Window returns the rows covering the viewport plus overscan on each side.
func (e *Engine) Window() Window {
	n := e.rows()
	if n == 0 {
		return Window{}
	}
	first := e.rowAt(e.scroll)
	last := e.rowAt(e.scroll + max(e.viewport-1, 0))
	first -= e.cfg.Overscan
	last += e.cfg.Overscan
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}

	w := Window{Rows: make([]Row, 0, last-first+1)}
	for r := first; r <= last; r++ {
		start, end := e.RowBounds(r)
		w.Rows = append(w.Rows, Row{
			Index:  r,
			Offset: e.offsets[r],
			Height: e.offsets[r+1] - e.offsets[r],
			Start:  start,
			End:    end,
		})
	}
	w.FirstIndex = w.Rows[0].Start
	w.EndIndex = w.Rows[len(w.Rows)-1].End
	return w
}

// ScrollToIndex scrolls the minimum distance that brings the row of index
// into view and returns that row. The OnScroll callback fires when the
// offset changed.
func (e *Engine) ScrollToIndex(index int) (row int, moved bool) {
	if e.count == 0 {
		return 0, false
	}
	if index < 0 {
		index = 0
	}
	if index >= e.count {
		index = e.count - 1
	}
	row = e.RowOf(index)
	top, bottom := e.offsets[row], e.offsets[row+1]

	target := e.scroll
	switch {
	case top < e.scroll:
		target = top
	case bottom > e.scroll+e.viewport:
		target = bottom - e.viewport
		if target > top {
			target = top
		}
	}
	if target == e.scroll {
		return row, false
	}
	e.scroll = target
	e.clampScroll()
	debug.Log(debug.LAYOUT, "scroll to index %d -> row %d offset %d", index, row, e.scroll)
	if e.onScroll != nil {
		e.onScroll(row, e.scroll)
	}
	return row, true
}
