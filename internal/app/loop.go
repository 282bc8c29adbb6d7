package app

import (
	"context"
	"sync"
)

// Loop runs every state mutation of the browser on one goroutine. Blocking
// work runs in background goroutines started with Go; their results come
// back as tasks on the loop, where stale ones are discarded by sequence or
// epoch comparison.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []task
	pending int // queued tasks plus running background jobs
	closed  bool

	wake  chan struct{}
	quit  chan struct{}
	done  chan struct{}
	after func()

	ctx    context.Context
	cancel context.CancelFunc
}

type task struct {
	fn   func()
	done chan struct{} // closed after fn and the after hook, for Call
}

// NewLoop starts the loop goroutine. after, if non-nil, runs on the loop
// goroutine after every task.
func NewLoop(after func()) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		after:  after,
		ctx:    ctx,
		cancel: cancel,
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			t := l.queue[0]
			l.queue[0] = task{}
			l.queue = l.queue[1:]
			l.mu.Unlock()

			t.fn()
			if l.after != nil {
				l.after()
			}
			if t.done != nil {
				close(t.done)
			}
			l.finish()
		}
	}
}

func (l *Loop) finish() {
	l.mu.Lock()
	l.pending--
	if l.pending == 0 {
		l.cond.Broadcast()
	}
	l.mu.Unlock()
}

// Post queues fn. It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	return l.enqueue(task{fn: fn})
}

func (l *Loop) enqueue(t task) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, t)
	l.pending++
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits until it and the after hook have
// finished. It must not be called from the loop goroutine.
func (l *Loop) Call(fn func()) bool {
	done := make(chan struct{})
	if !l.enqueue(task{fn: fn, done: done}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.done:
		return false
	}
}

// Go runs work in the background. A non-nil continuation it returns is
// posted to the loop.
func (l *Loop) Go(work func(ctx context.Context) func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.pending++
	l.mu.Unlock()

	go func() {
		defer l.finish()
		if next := work(l.ctx); next != nil {
			l.Post(next)
		}
	}()
}

// Drain blocks until no task is queued and no background job is running.
func (l *Loop) Drain() {
	l.mu.Lock()
	for l.pending > 0 && !l.closed {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

// Close stops the loop. Background jobs see their context cancelled; their
// continuations are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.queue = nil
	l.cond.Broadcast()
	l.mu.Unlock()

	l.cancel()
	close(l.quit)
	<-l.done
}
