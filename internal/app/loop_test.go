package app

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := newTestLoop(t)
	var got []int
	for i := 0; i < 50; i++ {
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	l.Drain()
	on(t, l, func() {
		require.Len(t, got, 50)
		for i, v := range got {
			assert.Equal(t, i, v)
		}
	})
}

func TestLoopGoPostsContinuation(t *testing.T) {
	l := newTestLoop(t)
	var ran atomic.Bool
	state := 0
	l.Go(func(ctx context.Context) func() {
		ran.Store(true)
		return func() { state = 42 }
	})
	l.Go(func(context.Context) func() { return nil })
	l.Drain()

	assert.True(t, ran.Load())
	on(t, l, func() { assert.Equal(t, 42, state) })
}

func TestLoopAfterHook(t *testing.T) {
	var after atomic.Int32
	l := NewLoop(func() { after.Add(1) })
	t.Cleanup(l.Close)

	l.Post(func() {})
	l.Post(func() {})
	l.Drain()
	assert.EqualValues(t, 2, after.Load())
}

func TestLoopClose(t *testing.T) {
	l := NewLoop(nil)
	block := make(chan struct{})
	cancelled := make(chan struct{})
	l.Go(func(ctx context.Context) func() {
		close(block)
		<-ctx.Done()
		close(cancelled)
		return func() { t.Error("continuation after close") }
	})
	<-block
	l.Close()
	<-cancelled

	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Call(func() {}))
	l.Go(func(context.Context) func() { t.Error("job after close"); return nil })
	l.Drain()
	l.Close()
}
