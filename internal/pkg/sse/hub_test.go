package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToSession(t *testing.T) {
	h := NewHub()

	a, cleanupA := h.Subscribe("a")
	defer cleanupA()
	b, cleanupB := h.Subscribe("b")
	defer cleanupB()

	h.Publish("a", Event{SessionID: "a", Event: "summary.updated", Data: 1})

	select {
	case ev := <-a:
		assert.Equal(t, "summary.updated", ev.Event)
	default:
		t.Fatal("subscriber of a got nothing")
	}
	assert.Empty(t, b)
	assert.Equal(t, 2, h.TotalSubscribers())
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("a")
	defer cleanup()

	for i := 0; i < 25; i++ {
		h.Publish("a", Event{Event: "tick"})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_CleanupAndClose(t *testing.T) {
	h := NewHub()

	ch1, cleanup1 := h.Subscribe("a")
	ch2, cleanup2 := h.Subscribe("a")
	require.Equal(t, 2, h.SubscriberCount("a"))

	cleanup1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, h.SubscriberCount("a"))

	h.Close("a")
	_, open = <-ch2
	assert.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("a"))

	// cleanup after Close must not panic
	assert.NotPanics(t, cleanup2)
	assert.NotPanics(t, cleanup1)
}
