package cart

import (
	"sync"

	"herbanusa-be/internal/product"
)

// LineItem is a product snapshot taken when it entered the cart plus the
// requested quantity (always >= 1 while stored).
type LineItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price x quantity.
func (li LineItem) LineTotal() int64 {
	return li.Product.Price * int64(li.Quantity)
}

// Cart holds at most one line item per product id, in the order products
// were first added. The zero value is an empty cart ready to use.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges into the existing line for p.ID (+1) or appends a new line
// with quantity 1. Stock is not checked here.
func (c *Cart) AddItem(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, LineItem{Product: p, Quantity: 1})
}

// AddItems is the product page "add N" action: n is clamped to [1, stock]
// and each unit goes through AddItem. It returns the units added, 0 when the
// product has no stock.
func (c *Cart) AddItems(p product.Product, n int) int {
	n = ClampQuantity(p, n)
	for i := 0; i < n; i++ {
		c.AddItem(p)
	}
	return n
}

// SetQuantity replaces the quantity of productID's line. Zero removes the
// line; an absent product is a no-op either way.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	if quantity == 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i].Quantity = quantity
	return nil
}

// Quantity returns the current quantity for productID, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// ItemCount is the cart badge number: the sum of all quantities.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, li := range c.items {
		n += li.Quantity
	}
	return n
}

func (c *Cart) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, li := range c.items {
		total += li.LineTotal()
	}
	return total
}

// Items returns a copy of the line items.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Snapshot is Items under the name the checkout hand-off uses.
func (c *Cart) Snapshot() []LineItem {
	return c.Items()
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// Clear empties the cart and reports whether anything was removed.
func (c *Cart) Clear() bool {
	return len(c.Drain()) > 0
}

// Drain empties the cart and returns what it held, in one step.
func (c *Cart) Drain() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items
	c.items = nil
	return out
}

// Restore puts drained lines back in front of anything added since. Lines
// for a product already present are merged into it.
func (c *Cart) Restore(items []LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make([]LineItem, 0, len(items)+len(c.items))
	for _, li := range items {
		if i := c.indexOf(li.Product.ID); i >= 0 {
			li.Quantity += c.items[i].Quantity
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		merged = append(merged, li)
	}
	c.items = append(merged, c.items...)
}

func (c *Cart) indexOf(productID string) int {
	for i, li := range c.items {
		if li.Product.ID == productID {
			return i
		}
	}
	return -1
}

// ShippingPreview is the flat shipping estimate the cart page shows before
// a tier is chosen at checkout.
const ShippingPreview int64 = 15000

type Summary struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  int64      `json:"subtotal"`
	Shipping  int64      `json:"shipping"`
	Total     int64      `json:"total"`
}

// Summary computes the cart page totals. Shipping is only previewed for a
// non-empty cart.
func (c *Cart) Summary() Summary {
	items := c.Items()

	s := Summary{Items: items}
	for _, li := range items {
		s.ItemCount += li.Quantity
		s.Subtotal += li.LineTotal()
	}
	if len(items) > 0 {
		s.Shipping = ShippingPreview
	}
	s.Total = s.Subtotal + s.Shipping
	return s
}

// ClampQuantity bounds a requested quantity to [1, stock]. A product with
// no stock clamps to 0, which callers treat as removal.
func ClampQuantity(p product.Product, quantity int) int {
	if p.Stock <= 0 {
		return 0
	}
	if quantity < 1 {
		return 1
	}
	if quantity > p.Stock {
		return p.Stock
	}
	return quantity
}
