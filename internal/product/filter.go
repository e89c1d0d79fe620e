package product

import (
	"sort"
	"strings"
)

// Match reports whether p passes every set filter field.
func (f Filter) Match(p *Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Location != "" && f.Location != "all" && !strings.Contains(p.Seller.Location, f.Location) {
		return false
	}
	if f.SellerID != "" && p.Seller.ID != f.SellerID {
		return false
	}
	return true
}

// Apply returns the matching products in the requested order.
func (f Filter) Apply(products []*Product) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	sortProducts(out, f.Sort)
	return out
}

func sortProducts(products []*Product, order SortOrder) {
	var less func(a, b *Product) bool

	switch order {
	case SortRating:
		less = func(a, b *Product) bool { return a.Rating > b.Rating }
	case SortPriceAsc:
		less = func(a, b *Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *Product) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortPopular:
		less = func(a, b *Product) bool { return a.Reviews > b.Reviews }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
