package checkout

import (
	"context"
	"strings"

	"herbanusa-be/internal/cart"
)

type Stage string

const (
	StageAddress  Stage = "address"
	StageShipping Stage = "shipping"
	StagePayment  Stage = "payment"
	StageSuccess  Stage = "success"
)

// Step is the 1-based position shown in the progress bar.
func (s Stage) Step() int {
	switch s {
	case StageAddress:
		return 1
	case StageShipping:
		return 2
	case StagePayment:
		return 3
	case StageSuccess:
		return 4
	default:
		return 0
	}
}

// ActionLabel is the text of the primary button for the stage.
func (s Stage) ActionLabel() string {
	switch s {
	case StageAddress:
		return "Lanjut ke Pengiriman"
	case StageShipping:
		return "Lanjut ke Pembayaran"
	case StagePayment:
		return "Buat Pesanan"
	default:
		return ""
	}
}

type Tier string

const (
	TierRegular Tier = "regular"
	TierExpress Tier = "express"
)

type ShippingOption struct {
	Tier        Tier   `json:"tier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ETA         string `json:"eta"`
	Cost        int64  `json:"cost"`
}

var shippingOptions = map[Tier]ShippingOption{
	TierRegular: {Tier: TierRegular, Name: "Reguler", Description: "Estimasi tiba 3-5 hari kerja", ETA: "3-5 hari", Cost: 15000},
	TierExpress: {Tier: TierExpress, Name: "Express", Description: "Estimasi tiba 1-2 hari kerja", ETA: "1-2 hari", Cost: 25000},
}

func (t Tier) Valid() bool {
	_, ok := shippingOptions[t]
	return ok
}

func (t Tier) Option() ShippingOption {
	return shippingOptions[t]
}

// Cost is the flat shipping price of the tier, 0 for an unknown tier.
func (t Tier) Cost() int64 {
	return shippingOptions[t].Cost
}

// ShippingOptions lists the tiers in display order.
func ShippingOptions() []ShippingOption {
	return []ShippingOption{shippingOptions[TierRegular], shippingOptions[TierExpress]}
}

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentEWallet  PaymentMethod = "ewallet"
)

type PaymentOption struct {
	Method      PaymentMethod `json:"method"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

var paymentOptions = []PaymentOption{
	{Method: PaymentCOD, Name: "Bayar di Tempat (COD)", Description: "Bayar saat produk sampai"},
	{Method: PaymentTransfer, Name: "Transfer Bank", Description: "BCA, Mandiri, BNI"},
	{Method: PaymentEWallet, Name: "E-Wallet", Description: "GoPay, OVO, Dana"},
}

func (m PaymentMethod) Valid() bool {
	for _, o := range paymentOptions {
		if o.Method == m {
			return true
		}
	}
	return false
}

func PaymentOptions() []PaymentOption {
	out := make([]PaymentOption, len(paymentOptions))
	copy(out, paymentOptions)
	return out
}

type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Validate requires name, phone, address and city. Postal code is optional.
func (a Address) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Line renders the address as a single line for the order card.
func (a Address) Line() string {
	parts := []string{strings.TrimSpace(a.Address), strings.TrimSpace(a.City)}
	if pc := strings.TrimSpace(a.PostalCode); pc != "" {
		parts = append(parts, pc)
	}
	return strings.Join(parts, ", ")
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

func computeTotals(items []cart.LineItem, tier Tier) Totals {
	var t Totals
	for _, li := range items {
		t.Subtotal += li.LineTotal()
	}
	t.Shipping = tier.Cost()
	t.Total = t.Subtotal + t.Shipping
	return t
}

// Placement is everything needed to create an order from a finished
// checkout.
type Placement struct {
	SessionID string
	Items     []cart.LineItem
	Address   Address
	Shipping  Tier
	Payment   PaymentMethod
	Totals    Totals
}

// OrderPlacer creates the order for a completed checkout and returns its id.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, p Placement) (string, error)
}
