package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"herbanusa-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, seller Seller, input Input) (*Product, error)
	Update(ctx context.Context, sellerID, id string, input Input) (*Product, error)
	Delete(ctx context.Context, sellerID, id string) error
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Product, error) {
	if filter.Category != "" && filter.Category != CategoryAll && !filter.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a farmer product. Fields the farmer form does not collect get
// the catalog defaults.
func (s *service) Create(ctx context.Context, seller Seller, input Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("seller_id", seller.ID),
	)

	if seller.ID == "" {
		return nil, ErrSellerRequired
	}
	if err := validateInput(input); err != nil {
		log.Warn("product rejected", zap.Error(err))
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = CategoryImmunity
	}
	image := strings.TrimSpace(input.ImageURL)
	if image == "" {
		image = placeholderImage
	}

	p := &Product{
		ID:          "new-" + uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Price:       *input.Price,
		Stock:       *input.Stock,
		Description: input.Description,
		Image:       image,
		Category:    category,
		Seller:      s.sellerProfile(ctx, seller),
		Benefits:    []string{"Manfaat produk"},
		Usage:       "Cara penggunaan produk",
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, sellerID, id string, input Input) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Price = *input.Price
	p.Stock = *input.Stock
	p.Description = input.Description
	if img := strings.TrimSpace(input.ImageURL); img != "" {
		p.Image = img
	}
	if input.Category != "" {
		p.Category = input.Category
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product updated",
		zap.String("product_id", p.ID),
		zap.String("seller_id", sellerID),
	)
	return p, nil
}

func (s *service) Delete(ctx context.Context, sellerID, id string) error {
	if _, err := s.owned(ctx, sellerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CountBySeller(ctx context.Context, sellerID string) (int, error) {
	return s.repo.CountBySeller(ctx, sellerID)
}

func (s *service) owned(ctx context.Context, sellerID, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Seller.ID != sellerID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// sellerProfile prefers the profile already attached to the seller's
// existing listings over the sparse token claims.
func (s *service) sellerProfile(ctx context.Context, seller Seller) Seller {
	existing, err := s.repo.List(ctx, Filter{SellerID: seller.ID})
	if err == nil && len(existing) > 0 {
		return existing[0].Seller
	}
	return seller
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil || in.Stock == nil {
		return ErrIncompleteProduct
	}
	if *in.Price < 0 {
		return ErrInvalidPrice
	}
	if *in.Stock < 0 {
		return ErrInvalidStock
	}
	if in.Category != "" && !in.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// IsValidation reports whether err is a farmer form problem rather than a
// storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrIncompleteProduct) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStock) ||
		errors.Is(err, ErrInvalidCategory)
}
