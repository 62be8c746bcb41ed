package analytics

import (
	"sync"
	"time"
)

// Entry kinds in the activity feed.
const (
	KindCreated = "created"
	KindClicked = "clicked"
	KindDeleted = "deleted"
)

// Entry is one item of recent activity.
type Entry struct {
	Kind   string    `json:"kind"`
	LinkID string    `json:"linkId"`
	Alias  string    `json:"alias"`
	At     time.Time `json:"at"`
}

// Feed is a bounded, newest-first log of link activity. It is fed by the
// event consumers and is strictly supplementary: click counts live in the
// registry, so a lost entry never affects link state.
type Feed struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// NewFeed creates a feed that retains at most limit entries.
func NewFeed(limit int) *Feed {
	return &Feed{limit: limit}
}

// Add prepends an entry, evicting the oldest beyond the retention limit.
func (f *Feed) Add(entry Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]Entry{entry}, f.entries...)
	if len(f.entries) > f.limit {
		f.entries = f.entries[:f.limit]
	}
}

// Entries returns a snapshot of the feed, newest first.
func (f *Feed) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Entry, len(f.entries))
	copy(out, f.entries)

	return out
}
