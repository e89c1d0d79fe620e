package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrIncompleteProduct = errors.New("harap lengkapi semua data produk")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidStock      = errors.New("stock must not be negative")
	ErrInvalidCategory   = errors.New("unknown product category")
	ErrNotOwner          = errors.New("product belongs to another seller")
	ErrSellerRequired    = errors.New("seller is required")
)
