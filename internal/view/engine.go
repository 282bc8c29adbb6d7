package view

import (
	"sync"

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/events"
	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
)

// ChangeKind tells observers what moved.
type ChangeKind int

const (
	ItemsChanged ChangeKind = iota // new input or new ordering
	ModeChanged                    // presentation only
)

// Change is delivered to observers after every mutation.
type Change struct {
	Kind   ChangeKind
	Source Source
	State  State
	Items  []Item // shared; never mutated after publication
}

// Engine owns the view state and the ordered sequence.
type Engine struct {
	mu     sync.Mutex
	sorter *Sorter
	state  State
	source Source
	input  []Item
	items  []Item

	observers events.Observers[Change]
}

func NewEngine(state State, locale string) *Engine {
	return &Engine{sorter: NewSorter(locale), state: state}
}

// OnChange registers fn for every change.
func (e *Engine) OnChange(fn func(Change)) (remove func()) {
	return e.observers.Add(fn)
}

// SetEntries switches to directory input.
func (e *Engine) SetEntries(entries []fs.Entry) {
	e.setInput(FromDirectory, ItemsFromEntries(entries))
}

// SetPhotos switches to flat photo input.
func (e *Engine) SetPhotos(records []*photo.Record) {
	e.setInput(FromPhotos, ItemsFromRecords(records))
}

func (e *Engine) setInput(src Source, input []Item) {
	e.mu.Lock()
	e.source = src
	e.input = input
	e.resortLocked()
	ch := e.changeLocked(ItemsChanged)
	e.mu.Unlock()
	debug.Log(debug.VIEW, "input replaced: source=%d items=%d", src, len(ch.Items))
	e.observers.Notify(ch)
}

// SetViewMode changes the presentation mode. It reports whether it changed.
func (e *Engine) SetViewMode(m Mode) bool {
	e.mu.Lock()
	if e.state.Mode == m {
		e.mu.Unlock()
		return false
	}
	e.state.Mode = m
	ch := e.changeLocked(ModeChanged)
	e.mu.Unlock()
	debug.Log(debug.VIEW, "mode -> %s", m)
	e.observers.Notify(ch)
	return true
}

// SetSort changes key and order and re-sorts. It reports whether it changed.
func (e *Engine) SetSort(key SortKey, order SortOrder) bool {
	e.mu.Lock()
	if e.state.Key == key && e.state.Order == order {
		e.mu.Unlock()
		return false
	}
	e.state.Key, e.state.Order = key, order
	e.resortLocked()
	ch := e.changeLocked(ItemsChanged)
	e.mu.Unlock()
	debug.Log(debug.VIEW, "sort -> %s %s", key, order)
	e.observers.Notify(ch)
	return true
}

func (e *Engine) resortLocked() {
	e.items = e.sorter.Sort(e.input, e.state.Key, e.state.Order, e.source == FromDirectory)
}

func (e *Engine) changeLocked(kind ChangeKind) Change {
	return Change{Kind: kind, Source: e.source, State: e.state, Items: e.items}
}

// Items returns the current ordered sequence. The slice must not be modified.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items
}

// State returns the current view state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Source returns which input the sequence was built from.
func (e *Engine) Source() Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Clear drops all input.
func (e *Engine) Clear() {
	e.setInput(e.Source(), nil)
}
