package order

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusAccepted  Status = "accepted"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusNew,
	StatusAccepted,
	StatusPreparing,
	StatusShipped,
	StatusCompleted,
	StatusRejected,
}

// allowedTransitions holds the forward edges of the lifecycle. Reject is
// handled separately.
var allowedTransitions = map[Status]Status{
	StatusNew:       StatusAccepted,
	StatusAccepted:  StatusPreparing,
	StatusPreparing: StatusShipped,
	StatusShipped:   StatusCompleted,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAccepted, StatusPreparing, StatusShipped, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// Next is the single forward successor, if any.
func (s Status) Next() (Status, bool) {
	n, ok := allowedTransitions[s]
	return n, ok
}

func (s Status) CanTransitionTo(target Status) bool {
	n, ok := allowedTransitions[s]
	return ok && n == target
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Label is the badge text.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "Baru"
	case StatusAccepted:
		return "Diterima"
	case StatusPreparing:
		return "Diproses"
	case StatusShipped:
		return "Dikirim"
	case StatusCompleted:
		return "Selesai"
	case StatusRejected:
		return "Ditolak"
	default:
		return string(s)
	}
}

// Message is the toast shown when an order enters the status.
func (s Status) Message() string {
	switch s {
	case StatusNew:
		return "Pesanan baru"
	case StatusAccepted:
		return "Pesanan diterima"
	case StatusPreparing:
		return "Pesanan sedang disiapkan"
	case StatusShipped:
		return "Pesanan dikirim"
	case StatusCompleted:
		return "Pesanan selesai"
	case StatusRejected:
		return "Pesanan ditolak"
	default:
		return ""
	}
}

type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	SellerID  string `json:"sellerId"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a placed checkout. ProductName and Quantity summarise the items
// for the farmer order card.
type Order struct {
	ID              string    `json:"id"`
	ProductName     string    `json:"productName"`
	Quantity        int       `json:"quantity"`
	Total           int64     `json:"total"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	Status          Status    `json:"status"`
	ShippingTier    string    `json:"shippingTier"`
	PaymentMethod   string    `json:"paymentMethod"`
	ShippingCost    int64     `json:"shippingCost"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"date"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (o *Order) HasSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// SellerIDs returns the distinct sellers in item order.
func (o *Order) SellerIDs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range o.Items {
		if it.SellerID != "" && !seen[it.SellerID] {
			seen[it.SellerID] = true
			out = append(out, it.SellerID)
		}
	}
	return out
}

func (o *Order) clone() *Order {
	c := *o
	c.Items = append([]Item(nil), o.Items...)
	return &c
}

// summarize fills ProductName and Quantity from the items: "Jahe Merah"
// for one line, "Jahe Merah +2 lainnya" for more.
func summarize(items []Item) (string, int) {
	qty := 0
	for _, it := range items {
		qty += it.Quantity
	}
	switch len(items) {
	case 0:
		return "", 0
	case 1:
		return items[0].Name, qty
	default:
		return fmt.Sprintf("%s +%d lainnya", items[0].Name, len(items)-1), qty
	}
}

// Filter selects orders. Statuses are matched in the given order, so
// {accepted, preparing} lists all accepted orders before preparing ones.
type Filter struct {
	Statuses []Status
	SellerID string
}

type Dashboard struct {
	NewOrders     int   `json:"newOrders"`
	PendingOrders int   `json:"pendingOrders"`
	TotalProducts int   `json:"totalProducts"`
	Revenue       int64 `json:"revenue"`
}
