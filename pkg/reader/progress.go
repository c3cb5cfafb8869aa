package reader

// Tracker follows how much of the open chapter has loaded and which
// page the viewport is on. The loaded percentage only ever climbs;
// a page image reporting twice does not move it backwards.
type Tracker struct {
	total   int
	loaded  map[int]bool
	percent int
	page    int
}

func NewTracker() *Tracker {
	return &Tracker{loaded: make(map[int]bool), page: 1}
}

// Reset clears the tracker for a chapter with the given page count.
// This is the only way the percentage goes back down.
func (t *Tracker) Reset(total int) {
	t.total = total
	t.loaded = make(map[int]bool)
	t.percent = 0
	t.page = 1
}

// MarkLoaded records that the page image at index i finished loading.
// Out-of-range and duplicate reports are ignored.
func (t *Tracker) MarkLoaded(i int) {
	if i < 0 || i >= t.total || t.loaded[i] {
		return
	}
	t.loaded[i] = true
	if p := len(t.loaded) * 100 / t.total; p > t.percent {
		t.percent = p
	}
}

// Percent is the loaded percentage, floored, in [0,100].
func (t *Tracker) Percent() int { return t.percent }

// Done reports whether every page has loaded.
func (t *Tracker) Done() bool { return t.total > 0 && len(t.loaded) == t.total }

// Page is the 1-based page the viewport midpoint last sat on.
func (t *Tracker) Page() int { return t.page }

func (t *Tracker) Total() int { return t.total }

// Observe updates the current page from scroll geometry: offset is
// the viewport top, height its height, and heights the per-page
// heights in order. The current page is the one containing the
// viewport's vertical midpoint.
func (t *Tracker) Observe(offset, height int, heights []int) {
	if p := PageAt(offset, height, heights); p > 0 {
		t.page = p
	}
}

// PageAt returns the 1-based page whose span contains the viewport
// midpoint, or 0 when heights is empty. An offset past the end clamps
// to the last page.
func PageAt(offset, height int, heights []int) int {
	if len(heights) == 0 {
		return 0
	}
	mid := offset + height/2
	top := 0
	for i, h := range heights {
		if mid < top+h {
			return i + 1
		}
		top += h
	}
	return len(heights)
}
