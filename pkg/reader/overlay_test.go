package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlayAutoHides(t *testing.T) {
	now := time.Now()
	o := NewOverlay(3 * time.Second)
	o.Reset(now)
	assert.True(t, o.Visible())

	assert.False(t, o.Tick(now.Add(2*time.Second)))
	assert.True(t, o.Visible())

	assert.True(t, o.Tick(now.Add(3*time.Second)))
	assert.False(t, o.Visible())

	// Timer is disarmed after firing.
	assert.False(t, o.Tick(now.Add(10*time.Second)))
}

func TestOverlayPointerRestartsTimer(t *testing.T) {
	now := time.Now()
	o := NewOverlay(3 * time.Second)
	o.Reset(now)

	o.PointerMoved(now.Add(2 * time.Second))
	assert.False(t, o.Tick(now.Add(4*time.Second)), "old deadline must not fire")
	assert.True(t, o.Visible())
	assert.True(t, o.Tick(now.Add(5*time.Second)))
}

func TestOverlayTapToggles(t *testing.T) {
	now := time.Now()
	o := NewOverlay(3 * time.Second)
	o.Reset(now)

	o.Tap(now)
	assert.False(t, o.Visible())
	assert.True(t, o.Deadline().IsZero(), "hiding cancels the timer")

	o.Tap(now)
	assert.True(t, o.Visible())
	assert.False(t, o.Deadline().IsZero(), "showing arms the timer")
}

func TestOverlaySwipeShows(t *testing.T) {
	now := time.Now()
	o := NewOverlay(3 * time.Second)
	o.Reset(now)
	o.Tap(now) // hide

	o.Swipe(now.Add(time.Second))
	assert.True(t, o.Visible())
	assert.True(t, o.Tick(now.Add(4*time.Second)))
}

func TestOverlayScrollHides(t *testing.T) {
	now := time.Now()
	o := NewOverlay(3 * time.Second)
	o.Reset(now)

	o.Scrolled(ScrollHideOffset - 1)
	assert.True(t, o.Visible(), "small offsets leave the overlay alone")

	o.Scrolled(ScrollHideOffset + 1)
	assert.False(t, o.Visible())
	assert.True(t, o.Deadline().IsZero(), "scroll hide cancels the pending timer")
}

func TestIsSwipe(t *testing.T) {
	assert.True(t, IsSwipe(60, 200*time.Millisecond))
	assert.True(t, IsSwipe(-60, 200*time.Millisecond))
	assert.False(t, IsSwipe(10, 200*time.Millisecond))
	assert.False(t, IsSwipe(60, time.Second), "too slow to be a swipe")
}
