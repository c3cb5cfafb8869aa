package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	a, cancelA := n.Subscribe()
	defer cancelA()
	b, cancelB := n.Subscribe()
	defer cancelB()

	n.Publish(Event{Store: "bookmarks", Slug: "naruto"})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "bookmarks", ev.Store)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()
	cancel()

	// Channel is closed on cancel.
	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	n.Publish(Event{Store: "readlist", Slug: "bleach"})
}

func TestNotifierPublishNeverBlocks(t *testing.T) {
	n := NewNotifier()
	_, cancel := n.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Way past the subscriber buffer; nobody is draining.
		for i := 0; i < 100; i++ {
			n.Publish(Event{Store: "bookmarks"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
