package notify

import (
	"context"
	"sync"
)

const defaultFeedSize = 50

// Feed keeps the most recent events per audience in memory so the UI can
// poll them.
type Feed struct {
	mu     sync.RWMutex
	size   int
	events map[string][]Event
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{size: size, events: make(map[string][]Event)}
}

func (f *Feed) Notify(_ context.Context, ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := append(f.events[ev.Audience], ev)
	if over := len(list) - f.size; over > 0 {
		list = append([]Event(nil), list[over:]...)
	}
	f.events[ev.Audience] = list
	return nil
}

// Recent returns up to limit events for audience, oldest first. limit <= 0
// returns everything retained.
func (f *Feed) Recent(audience string, limit int) []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	list := f.events[audience]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	out := make([]Event, len(list))
	copy(out, list)
	return out
}
