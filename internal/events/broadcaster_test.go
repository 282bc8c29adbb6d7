package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterDelivers(t *testing.T) {
	b := NewBroadcaster[string](2)
	a, c := b.Subscribe(), b.Subscribe()
	require.Equal(t, 2, b.Count())

	b.Publish("/photos")
	assert.Equal(t, "/photos", <-a)
	assert.Equal(t, "/photos", <-c)

	b.Unsubscribe(a)
	assert.Equal(t, 1, b.Count())
	_, open := <-a
	assert.False(t, open)
}

func TestBroadcasterDropsForSlowConsumer(t *testing.T) {
	b := NewBroadcaster[int](1)
	sub := b.Subscribe()
	b.Publish(1)
	b.Publish(2)
	assert.Equal(t, 1, <-sub)
	select {
	case v := <-sub:
		t.Fatalf("unexpected value %d", v)
	default:
	}
	b.Close()
	assert.Zero(t, b.Count())
}

func TestObserversOrderAndRemove(t *testing.T) {
	var o Observers[int]
	var got []string
	o.Add(func(v int) { got = append(got, "first") })
	remove := o.Add(func(v int) { got = append(got, "second") })
	o.Add(func(v int) { got = append(got, "third") })

	o.Notify(1)
	remove()
	o.Notify(2)

	assert.Equal(t, []string{"first", "second", "third", "first", "third"}, got)
}

func TestObserverMayRemoveItself(t *testing.T) {
	var o Observers[int]
	calls := 0
	var remove func()
	remove = o.Add(func(int) {
		calls++
		remove()
	})
	o.Notify(1)
	o.Notify(2)
	assert.Equal(t, 1, calls)
}
