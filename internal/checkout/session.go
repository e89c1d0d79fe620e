package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/metrics"
	"herbanusa-be/internal/notify"
	"herbanusa-be/internal/payment"

	"go.uber.org/zap"
)

// OrderPlacedMessage is the toast shown once the order exists.
const OrderPlacedMessage = "Pesanan berhasil dibuat!"

// DefaultProcessingDelay simulates payment processing before the order is
// placed.
const DefaultProcessingDelay = 2 * time.Second

// Session is one customer's walk through address, shipping and payment.
// It is bound to the customer's cart and is safe for concurrent use; calls
// are serialized, including the processing delay.
type Session struct {
	mu sync.Mutex

	id      string
	cart    *cart.Cart
	stage   Stage
	address Address
	tier    Tier
	payment PaymentMethod

	orderID string
	placed  *Placement
	// done mirrors stage == StageSuccess and is readable without mu.
	done atomic.Bool

	placer   OrderPlacer
	notifier notify.Notifier
	delay    time.Duration
	sleep    func(time.Duration)
}

func newSession(id string, c *cart.Cart, placer OrderPlacer, notifier notify.Notifier, delay time.Duration) *Session {
	if notifier == nil {
		notifier = notify.Nop
	}
	return &Session{
		id:       id,
		cart:     c,
		stage:    StageAddress,
		tier:     TierRegular,
		payment:  PaymentCOD,
		placer:   placer,
		notifier: notifier,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// OrderID is set once the session reached success.
func (s *Session) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// Completed does not wait for a Next in progress.
func (s *Session) Completed() bool {
	return s.done.Load()
}

// SetAddress replaces the shipping address. Only editable on the address
// stage; validation happens when moving on.
func (s *Session) SetAddress(addr Address) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageAddress {
		return s.view(), ErrWrongStage
	}
	s.address = addr
	return s.view(), nil
}

func (s *Session) SelectShipping(t Tier) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !t.Valid() {
		return s.view(), ErrInvalidTier
	}
	if s.stage != StageShipping {
		return s.view(), ErrWrongStage
	}
	s.tier = t
	return s.view(), nil
}

func (s *Session) SelectPayment(m PaymentMethod) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !m.Valid() {
		return s.view(), ErrInvalidPayment
	}
	if s.stage != StagePayment {
		return s.view(), ErrWrongStage
	}
	s.payment = m
	return s.view(), nil
}

// Next advances one stage. Leaving the address stage requires a complete
// address. Leaving payment waits out the processing delay, places the
// order, clears the cart and notifies the customer. Calling Next on a
// completed session does nothing.
func (s *Session) Next(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CheckoutNext"),
		zap.String("stage", string(s.stage)),
	)

	switch s.stage {
	case StageAddress:
		if err := s.address.Validate(); err != nil {
			metrics.ValidationFailures.Inc()
			log.Info("address incomplete", zap.Error(err))
			return s.view(), err
		}
		s.stage = StageShipping
	case StageShipping:
		s.stage = StagePayment
	case StagePayment:
		if err := s.complete(ctx, log); err != nil {
			return s.view(), err
		}
	case StageSuccess:
	}

	return s.view(), nil
}

// complete runs with s.mu held so a concurrent Next waits and then sees
// StageSuccess. The cart is drained after the processing delay, so the
// order holds exactly what the cart held when it was emptied.
func (s *Session) complete(ctx context.Context, log *zap.Logger) error {
	if s.cart.IsEmpty() {
		return ErrEmptyCart
	}

	// the processing step cannot be cancelled by the caller
	ctx = context.WithoutCancel(ctx)

	timer := metrics.StartTimer()
	s.sleep(s.delay)

	items := s.cart.Drain()
	if len(items) == 0 {
		return ErrEmptyCart
	}

	p := Placement{
		SessionID: s.id,
		Items:     items,
		Address:   s.address,
		Shipping:  s.tier,
		Payment:   s.payment,
		Totals:    computeTotals(items, s.tier),
	}

	orderID, err := s.placer.CreateOrder(ctx, p)
	if err != nil {
		s.cart.Restore(items)
		log.Error("order placement failed", zap.Error(err))
		return fmt.Errorf("place order: %w", err)
	}

	s.orderID = orderID
	s.placed = &p
	s.stage = StageSuccess
	s.done.Store(true)

	ev := notify.NewEvent(notify.KindOrderCreated, notify.CustomerAudience(s.id), OrderPlacedMessage)
	ev.OrderID = orderID
	if err := s.notifier.Notify(ctx, ev); err != nil {
		metrics.NotifyFailures.Inc()
		log.Warn("order notification failed", zap.Error(err))
	}

	log.Info("checkout completed",
		zap.String("order_id", orderID),
		zap.Int64("total", p.Totals.Total),
		zap.Duration("duration", timer.Duration()),
	)
	return nil
}

// Back moves one stage back. Going back from the address stage abandons
// the session and reports true; the cart is left untouched.
func (s *Session) Back() (View, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stage {
	case StageAddress:
		return s.view(), true, nil
	case StageShipping:
		s.stage = StageAddress
	case StagePayment:
		s.stage = StageShipping
	case StageSuccess:
		return s.view(), false, ErrCompleted
	}
	return s.view(), false, nil
}

// Totals uses the live cart until the order is placed, then the placed
// snapshot.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals()
}

func (s *Session) totals() Totals {
	if s.placed != nil {
		return s.placed.Totals
	}
	return computeTotals(s.cart.Snapshot(), s.tier)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// View is the read model for the checkout page.
type View struct {
	SessionID   string          `json:"sessionId"`
	Stage       Stage           `json:"stage"`
	Step        int             `json:"step"`
	ActionLabel string          `json:"actionLabel,omitempty"`
	Address     Address         `json:"address"`
	Shipping    ShippingOption  `json:"shipping"`
	Payment     PaymentMethod   `json:"payment"`
	Items       []cart.LineItem `json:"items"`
	Totals      Totals          `json:"totals"`
	OrderID     string          `json:"orderId,omitempty"`
	Message     string          `json:"message,omitempty"`

	PaymentInstructions []string `json:"paymentInstructions,omitempty"`
}

func (s *Session) view() View {
	v := View{
		SessionID:   s.id,
		Stage:       s.stage,
		Step:        s.stage.Step(),
		ActionLabel: s.stage.ActionLabel(),
		Address:     s.address,
		Shipping:    s.tier.Option(),
		Payment:     s.payment,
		Totals:      s.totals(),
		OrderID:     s.orderID,
	}
	if s.placed != nil {
		v.Items = s.placed.Items
		v.Message = OrderPlacedMessage
		v.PaymentInstructions = payment.Instructions(string(s.placed.Payment), s.orderID, s.placed.Totals.Total)
	} else {
		v.Items = s.cart.Snapshot()
	}
	return v
}
