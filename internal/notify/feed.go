package notify

import "sync"

// Feed is a fixed-size ring of recent notifications that the UI polls to
// render toasts. Oldest entries are evicted first.
type Feed struct {
	mu      sync.RWMutex
	entries []Notification
	max     int
}

// NewFeed creates a feed retaining at most max notifications.
func NewFeed(max int) *Feed {
	if max < 1 {
		max = 50
	}
	return &Feed{max: max}
}

// Deliver appends a notification, evicting the oldest entry when full.
func (f *Feed) Deliver(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, n)
	if len(f.entries) > f.max {
		f.entries = f.entries[len(f.entries)-f.max:]
	}
}

// Recent returns the retained notifications, newest last.
func (f *Feed) Recent() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
