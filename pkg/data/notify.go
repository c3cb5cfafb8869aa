package data

import "sync"

// Event describes a mutation of one of the preference lists. An empty
// Store means "something changed, refresh everything".
type Event struct {
	Store string // "bookmarks", "readlist", or ""
	Slug  string
}

// Notifier fans preference-store changes out to every open view, so a
// library screen refreshes when the details screen toggles a bookmark.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel function must be
// called when the view unmounts.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, 8)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking; a
// subscriber that stopped draining its channel misses updates instead
// of stalling the writer.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
