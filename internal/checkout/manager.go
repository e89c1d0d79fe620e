package checkout

import (
	"context"
	"sync"
	"time"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/metrics"
	"herbanusa-be/internal/notify"

	"go.uber.org/zap"
)

// Manager holds at most one checkout session per customer session id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	placer   OrderPlacer
	notifier notify.Notifier
	delay    time.Duration
	sleep    func(time.Duration)
}

func NewManager(placer OrderPlacer, notifier notify.Notifier, delay time.Duration) *Manager {
	if delay < 0 {
		delay = 0
	}
	return &Manager{
		sessions: make(map[string]*Session),
		placer:   placer,
		notifier: notifier,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// Begin starts checkout for the cart. A live session is resumed as is; a
// completed one is replaced by a fresh session.
func (m *Manager) Begin(ctx context.Context, sessionID string, c *cart.Cart) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok && !s.Completed() {
		return s, nil
	}

	s := newSession(sessionID, c, m.placer, m.notifier, m.delay)
	s.sleep = m.sleep
	m.sessions[sessionID] = s
	metrics.CheckoutsStarted.Inc()

	logger.FromCtx(ctx).Info("checkout started",
		zap.Int("items", c.Len()),
		zap.Int64("subtotal", c.Subtotal()),
	)
	return s, nil
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Back steps the session back and discards it when it is abandoned.
func (m *Manager) Back(ctx context.Context, sessionID string) (View, bool, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return View{}, false, err
	}

	v, abandoned, err := s.Back()
	if err != nil {
		return v, false, err
	}
	if abandoned {
		m.discard(sessionID, s)
		metrics.CheckoutsAbandoned.Inc()
		logger.FromCtx(ctx).Info("checkout abandoned")
	}
	return v, abandoned, nil
}

// Discard drops the session. The cart is left untouched.
func (m *Manager) Discard(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false
	}
	delete(m.sessions, sessionID)
	return true
}

func (m *Manager) discard(sessionID string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[sessionID] == s {
		delete(m.sessions, sessionID)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
