package cart

import (
	"context"

	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/product"

	"go.uber.org/zap"
)

// ProductLookup is the read side of the product directory the cart needs.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

type AddToCartParams struct {
	SessionID string
	ProductID string
	Quantity  int
}

type UpdateQuantityParams struct {
	SessionID string
	ProductID string
	Quantity  int
}

type Service interface {
	GetCart(ctx context.Context, sessionID string) (Summary, error)
	AddToCart(ctx context.Context, params AddToCartParams) (Summary, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) (Summary, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string) (Summary, error)
	Cart(sessionID string) *Cart
}

type service struct {
	store    *Store
	products ProductLookup
}

func NewService(store *Store, products ProductLookup) Service {
	return &service{store: store, products: products}
}

func (s *service) Cart(sessionID string) *Cart {
	return s.store.Get(sessionID)
}

func (s *service) GetCart(_ context.Context, sessionID string) (Summary, error) {
	if sessionID == "" {
		return Summary{}, ErrSessionRequired
	}
	return s.store.Get(sessionID).Summary(), nil
}

// AddToCart adds Quantity units of a product, bounded by stock.
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	if params.SessionID == "" {
		return Summary{}, ErrSessionRequired
	}
	if params.ProductID == "" {
		return Summary{}, ErrProductIDRequired
	}
	if params.Quantity < 0 {
		return Summary{}, ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, params.ProductID)
	if err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		return Summary{}, err
	}

	if p.Stock <= 0 {
		return Summary{}, ErrOutOfStock
	}

	c := s.store.Get(params.SessionID)
	n := c.AddItems(*p, params.Quantity)

	log.Info("added to cart",
		zap.Int("units", n),
		zap.Int("line_quantity", c.Quantity(p.ID)),
		zap.Int("item_count", c.ItemCount()),
	)
	return c.Summary(), nil
}

// UpdateQuantity is the cart page -/+ control. Zero removes the line (a
// no-op when already gone); anything else is clamped to [1, stock].
func (s *service) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) (Summary, error) {
	if params.SessionID == "" {
		return Summary{}, ErrSessionRequired
	}
	if params.ProductID == "" {
		return Summary{}, ErrProductIDRequired
	}
	if params.Quantity < 0 {
		return Summary{}, ErrInvalidQuantity
	}

	c := s.store.Get(params.SessionID)

	qty := params.Quantity
	if qty > 0 {
		li, ok := findLine(c, params.ProductID)
		if !ok {
			return Summary{}, ErrCartItemNotFound
		}
		qty = ClampQuantity(li.Product, qty)
	}

	if err := c.SetQuantity(params.ProductID, qty); err != nil {
		return Summary{}, err
	}

	logger.FromCtx(ctx).Debug("cart quantity set",
		zap.String("product_id", params.ProductID),
		zap.Int("requested", params.Quantity),
		zap.Int("applied", qty),
	)
	return c.Summary(), nil
}

func (s *service) RemoveFromCart(ctx context.Context, sessionID, productID string) (Summary, error) {
	return s.UpdateQuantity(ctx, UpdateQuantityParams{SessionID: sessionID, ProductID: productID})
}

func findLine(c *Cart, productID string) (LineItem, bool) {
	for _, li := range c.Items() {
		if li.Product.ID == productID {
			return li, true
		}
	}
	return LineItem{}, false
}
