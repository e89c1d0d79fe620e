package cart

import (
	"sync"
	"time"
)

// Store keeps one cart per customer session. Carts are never persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// dropped by Sweep; ttl <= 0 keeps them forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session's cart, creating an empty one on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{cart: New()}
		s.sessions[sessionID] = e
	}
	e.lastSeen = s.now()
	return e.cart
}

// Drop forgets the session entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes idle sessions and returns their ids.
func (s *Store) Sweep() []string {
	if s.ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped []string
	for id, e := range s.sessions {
		if s.now().Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}
