package product

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products []*Product
}

// NewMemoryRepository keeps the catalog in process memory, in insertion
// order. Pass SeedProducts() for the demo catalog.
func NewMemoryRepository(seed []*Product) Repository {
	return &memoryRepository{products: seed}
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := filter.Apply(r.products)
	for i, p := range out {
		out[i] = clone(p)
	}
	return out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return clone(r.products[i]), nil
	}
	return nil, ErrProductNotFound
}

func (r *memoryRepository) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, clone(p))
	return nil
}

func (r *memoryRepository) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.ID)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products[i] = clone(p)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *memoryRepository) CountBySeller(_ context.Context, sellerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.products {
		if p.Seller.ID == sellerID {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) indexOf(id string) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(p *Product) *Product {
	c := *p
	c.Benefits = append([]string(nil), p.Benefits...)
	return &c
}
