package order

import (
	"context"
	"errors"
	"time"

	"herbanusa-be/internal/checkout"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/metrics"
	"herbanusa-be/internal/notify"
	"herbanusa-be/internal/utils"

	"go.uber.org/zap"
)

// ProductCounter counts a seller's listings for the dashboard.
type ProductCounter interface {
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type Service interface {
	CreateOrder(ctx context.Context, p checkout.Placement) (string, error)
	Get(ctx context.Context, id string) (*Order, error)
	Advance(ctx context.Context, id string, target Status) (*Order, error)
	Reject(ctx context.Context, id string) (*Order, error)
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)
	ListForFarmer(ctx context.Context, farmerID string, statuses ...Status) ([]*Order, error)
	Processing(ctx context.Context, farmerID string) ([]*Order, error)
	Dashboard(ctx context.Context, farmerID string) (Dashboard, error)
}

type service struct {
	repo     Repository
	products ProductCounter
	notifier notify.Notifier
	now      func() time.Time
	newID    func() string
}

func NewService(repo Repository, products ProductCounter, notifier notify.Notifier) Service {
	if notifier == nil {
		notifier = notify.Nop
	}
	return &service{
		repo:     repo,
		products: products,
		notifier: notifier,
		now:      time.Now,
		newID:    utils.GenerateOrderID,
	}
}

// CreateOrder turns a finished checkout into an order in status new.
func (s *service) CreateOrder(ctx context.Context, p checkout.Placement) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	if len(p.Items) == 0 {
		return "", ErrNoItems
	}

	items := make([]Item, len(p.Items))
	for i, li := range p.Items {
		items[i] = Item{
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			SellerID:  li.Product.Seller.ID,
			Price:     li.Product.Price,
			Quantity:  li.Quantity,
		}
	}
	name, qty := summarize(items)
	now := s.now().UTC()

	o := &Order{
		ID:              s.newID(),
		ProductName:     name,
		Quantity:        qty,
		Total:           p.Totals.Total,
		CustomerName:    p.Address.Name,
		CustomerPhone:   p.Address.Phone,
		CustomerAddress: p.Address.Line(),
		Status:          StatusNew,
		ShippingTier:    string(p.Shipping),
		PaymentMethod:   string(p.Payment),
		ShippingCost:    p.Totals.Shipping,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return "", err
	}

	metrics.OrdersPlaced.Inc()
	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("items", len(items)),
		zap.Int64("total", o.Total),
	)

	s.notify(ctx, notify.KindOrderCreated, o)
	return o.ID, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Advance moves an order one step forward along new, accepted, preparing,
// shipped, completed. Anything else is a TransitionError.
func (s *service) Advance(ctx context.Context, id string, target Status) (*Order, error) {
	return s.transition(ctx, "Advance", id, target, func(from Status) bool {
		return from.CanTransitionTo(target)
	})
}

// Reject declines a new order. Only new orders can be rejected.
func (s *service) Reject(ctx context.Context, id string) (*Order, error) {
	return s.transition(ctx, "Reject", id, StatusRejected, func(from Status) bool {
		return from == StatusNew
	})
}

func (s *service) transition(ctx context.Context, method, id string, target Status, allowed func(Status) bool) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.String("order_id", id),
		zap.String("target", string(target)),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !allowed(o.Status) {
		metrics.InvalidTransitions.Inc()
		log.Info("transition refused", zap.String("from", string(o.Status)))
		return nil, &TransitionError{OrderID: id, From: o.Status, To: target}
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, o.Status, target, now); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			metrics.InvalidTransitions.Inc()
			current := o.Status
			if fresh, gerr := s.repo.GetByID(ctx, id); gerr == nil {
				current = fresh.Status
			}
			return nil, &TransitionError{OrderID: id, From: current, To: target}
		}
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = now

	metrics.StatusTransitions.Inc()
	log.Info("order status changed", zap.String("from", string(from)))

	s.notify(ctx, notify.KindOrderStatus, o)
	return o, nil
}

func (s *service) notify(ctx context.Context, kind notify.Kind, o *Order) {
	ev := notify.NewEvent(kind, notify.FarmerAudience, o.Status.Message())
	ev.OrderID = o.ID
	ev.Status = string(o.Status)
	ev.SellerIDs = o.SellerIDs()

	if err := s.notifier.Notify(ctx, ev); err != nil {
		metrics.NotifyFailures.Inc()
		logger.FromCtx(ctx).Warn("order notification failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

// ListByStatus returns every order in status, oldest first.
func (s *service) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, Filter{Statuses: []Status{status}})
}

// ListForFarmer returns orders containing the farmer's products, optionally
// narrowed to statuses.
func (s *service) ListForFarmer(ctx context.Context, farmerID string, statuses ...Status) ([]*Order, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, Filter{Statuses: statuses, SellerID: farmerID})
}

// Processing is the farmer's "Proses" tab: accepted orders, then preparing
// ones. An empty farmerID lists every seller's orders.
func (s *service) Processing(ctx context.Context, farmerID string) ([]*Order, error) {
	return s.repo.List(ctx, Filter{
		Statuses: []Status{StatusAccepted, StatusPreparing},
		SellerID: farmerID,
	})
}

// Dashboard counts the farmer's new and in-process orders, listed products
// and revenue from the farmer's lines of completed orders.
func (s *service) Dashboard(ctx context.Context, farmerID string) (Dashboard, error) {
	orders, err := s.repo.List(ctx, Filter{SellerID: farmerID})
	if err != nil {
		return Dashboard{}, err
	}

	var d Dashboard
	for _, o := range orders {
		switch o.Status {
		case StatusNew:
			d.NewOrders++
		case StatusAccepted, StatusPreparing:
			d.PendingOrders++
		case StatusCompleted:
			for _, it := range o.Items {
				if it.SellerID == farmerID {
					d.Revenue += it.Subtotal()
				}
			}
		case StatusShipped, StatusRejected:
		}
	}

	if s.products != nil {
		n, err := s.products.CountBySeller(ctx, farmerID)
		if err != nil {
			return Dashboard{}, err
		}
		d.TotalProducts = n
	}
	return d, nil
}
