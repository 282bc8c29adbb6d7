// Package events fans state changes out to subscribers.
package events

import "sync"

// Broadcaster delivers values to channel subscribers.
type Broadcaster[T any] struct {
	mu          sync.RWMutex
	subscribers map[chan T]struct{}
	buffer      int
}

// NewBroadcaster creates a broadcaster whose subscriber channels hold buffer values.
func NewBroadcaster[T any](buffer int) *Broadcaster[T] {
	if buffer <= 0 {
		buffer = 64
	}
	return &Broadcaster[T]{subscribers: make(map[chan T]struct{}), buffer: buffer}
}

// Subscribe adds a subscriber. The caller must call Unsubscribe when done.
func (b *Broadcaster[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		if (<-chan T)(ch) == sub {
			delete(b.subscribers, ch)
			close(ch)
			return
		}
	}
}

// Publish sends v to every subscriber. Slow consumers drop values.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- v:
		default:
		}
	}
}

// Count returns the number of subscribers.
func (b *Broadcaster[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close unsubscribes everyone.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = make(map[chan T]struct{})
}

// Observers is a synchronous callback list. Callbacks run on the notifying
// goroutine, in registration order, outside the list's lock.
type Observers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
	ids  []int
}

// Add registers fn and returns a function that removes it.
func (o *Observers[T]) Add(fn func(T)) (remove func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.ids = append(o.ids, id)
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
		for i, v := range o.ids {
			if v == id {
				o.ids = append(o.ids[:i:i], o.ids[i+1:]...)
				break
			}
		}
	}
}

// Notify calls every registered callback with v.
func (o *Observers[T]) Notify(v T) {
	o.mu.Lock()
	fns := make([]func(T), 0, len(o.ids))
	for _, id := range o.ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
