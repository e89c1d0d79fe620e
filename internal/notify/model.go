package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindOrderCreated Kind = "order.created"
	KindOrderStatus  Kind = "order.status"
)

// FarmerAudience receives every order event. Customer events are addressed
// to a single session, see CustomerAudience.
const FarmerAudience = "farmer"

func CustomerAudience(sessionID string) string {
	return "customer:" + sessionID
}

// Event is a user-facing notification (the UI shows it as a toast) that is
// also fanned out to the event bus.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Audience  string    `json:"audience"`
	OrderID   string    `json:"orderId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message"`
	SellerIDs []string  `json:"sellerIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent stamps an id and timestamp on an event.
func NewEvent(kind Kind, audience, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Audience:  audience,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event) error

func (f NotifierFunc) Notify(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Multi delivers to every sink in order. All sinks run even when one fails;
// the first error is returned.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Nop drops everything.
var Nop Notifier = NotifierFunc(func(context.Context, Event) error { return nil })
