package order

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	orders []*Order
	byID   map[string]*Order
}

// NewMemoryRepository keeps orders in insertion order, starting from seed.
func NewMemoryRepository(seed []*Order) Repository {
	r := &memoryRepository{byID: make(map[string]*Order)}
	for _, o := range seed {
		c := o.clone()
		r.orders = append(r.orders, c)
		r.byID[c.ID] = c
	}
	return r
}

func (r *memoryRepository) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := o.clone()
	r.orders = append(r.orders, c)
	r.byID[c.ID] = c
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o.clone(), nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Order
	for _, o := range r.orders {
		if !matchStatus(o.Status, filter.Statuses) {
			continue
		}
		if filter.SellerID != "" && !o.HasSeller(filter.SellerID) {
			continue
		}
		out = append(out, o.clone())
	}
	return groupByStatus(out, filter.Statuses), nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, from, to Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status != from {
		return ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}

func matchStatus(s Status, statuses []Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
