package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrSessionRequired   = errors.New("session id is required")
	ErrProductIDRequired = errors.New("product id is required")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOutOfStock       = errors.New("product is out of stock")
)
