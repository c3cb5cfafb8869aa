package reader

import "time"

const (
	// AutoHideDelay is how long the overlay stays up after the last
	// interaction before hiding itself.
	AutoHideDelay = 3 * time.Second

	// ScrollHideOffset is how far down the reader must scroll before
	// the overlay hides on its own.
	ScrollHideOffset = 100

	// Swipe thresholds: a drag counts as a swipe when it covers at
	// least SwipeDistance within SwipeWindow.
	SwipeDistance = 50
	SwipeWindow   = 300 * time.Millisecond
)

// Overlay is the reader chrome's visibility state machine. Pointer
// movement and swipes show it and arm the auto-hide timer; a tap
// toggles it; scrolling down past the threshold hides it and cancels
// any pending timer. Callers pass the clock in, so tests can steer it.
type Overlay struct {
	visible  bool
	delay    time.Duration
	deadline time.Time // zero when no hide is pending
}

func NewOverlay(delay time.Duration) *Overlay {
	if delay <= 0 {
		delay = AutoHideDelay
	}
	return &Overlay{visible: true, delay: delay}
}

// Reset shows the overlay and arms the timer, for a fresh chapter.
func (o *Overlay) Reset(now time.Time) {
	o.visible = true
	o.deadline = now.Add(o.delay)
}

// PointerMoved shows the overlay and restarts the auto-hide timer.
func (o *Overlay) PointerMoved(now time.Time) {
	o.visible = true
	o.deadline = now.Add(o.delay)
}

// Swipe shows the overlay and restarts the timer.
func (o *Overlay) Swipe(now time.Time) {
	o.visible = true
	o.deadline = now.Add(o.delay)
}

// Tap toggles visibility. Showing arms the timer; hiding cancels it.
func (o *Overlay) Tap(now time.Time) {
	if o.visible {
		o.visible = false
		o.deadline = time.Time{}
		return
	}
	o.visible = true
	o.deadline = now.Add(o.delay)
}

// Scrolled reacts to a scroll position change. Scrolling down past
// the threshold hides the overlay and cancels the pending timer;
// anything else leaves the state alone.
func (o *Overlay) Scrolled(offset int) {
	if offset > ScrollHideOffset && o.visible {
		o.visible = false
		o.deadline = time.Time{}
	}
}

// Tick fires the auto-hide timer. Returns true when the overlay just
// hid, so the view knows to redraw.
func (o *Overlay) Tick(now time.Time) bool {
	if o.deadline.IsZero() || now.Before(o.deadline) {
		return false
	}
	o.visible = false
	o.deadline = time.Time{}
	return true
}

func (o *Overlay) Visible() bool { return o.visible }

// Deadline is the pending hide time, zero when none is armed. Views
// use it to schedule their next tick.
func (o *Overlay) Deadline() time.Time { return o.deadline }

// IsSwipe reports whether a drag of the given distance and duration
// counts as a swipe gesture.
func IsSwipe(distance int, elapsed time.Duration) bool {
	if distance < 0 {
		distance = -distance
	}
	return distance >= SwipeDistance && elapsed <= SwipeWindow
}
