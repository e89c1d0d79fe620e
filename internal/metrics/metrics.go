package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

func (c *Counter) reset() {
	atomic.StoreUint64(&c.value, 0)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters, served on /debug/metrics.
var (
	CheckoutsStarted   Counter
	CheckoutsAbandoned Counter
	ValidationFailures Counter
	OrdersPlaced       Counter
	StatusTransitions  Counter
	InvalidTransitions Counter
	NotifyFailures     Counter
	RateLimited        Counter
)

var registry = map[string]*Counter{
	"checkouts_started":   &CheckoutsStarted,
	"checkouts_abandoned": &CheckoutsAbandoned,
	"validation_failures": &ValidationFailures,
	"orders_placed":       &OrdersPlaced,
	"status_transitions":  &StatusTransitions,
	"invalid_transitions": &InvalidTransitions,
	"notify_failures":     &NotifyFailures,
	"rate_limited":        &RateLimited,
}

// Snapshot returns the current value of every counter.
func Snapshot() map[string]uint64 {
	out := make(map[string]uint64, len(registry))
	for name, c := range registry {
		out[name] = c.Load()
	}
	return out
}

// Reset zeroes every counter. Tests only.
func Reset() {
	for _, c := range registry {
		c.reset()
	}
}
