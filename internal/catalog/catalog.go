// Package catalog implements the in-memory product view-model: filtering,
// multi-key sorting, and derived statistics over a product list. Everything
// here is a pure function over its inputs; results are recomputed from
// scratch on every call, which is fine at catalog scale.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/product"
)

// CategoryAll is the category filter value that matches every product.
const CategoryAll = "all"

// Filter holds the ephemeral filter state for a catalog view.
//
// A zero Filter matches every product: an empty query matches all names, an
// empty (or "all") category matches all categories, and a zero MaxPrice
// disables the upper price bound. When MaxPrice is set and MinPrice exceeds
// it, no product can satisfy the conjunction and the result is empty.
type Filter struct {
	Query       string
	Category    string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	VisibleOnly bool
}

// Matches reports whether p satisfies every active predicate of f.
func (f Filter) Matches(p product.Product) bool {
	if f.VisibleOnly && !p.IsVisible {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	if p.Price.LessThan(f.MinPrice) {
		return false
	}
	if !f.MaxPrice.IsZero() && p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	return true
}

// Apply returns the products satisfying all active predicates of f,
// preserving insertion order. The input slice is not modified.
func Apply(products []product.Product, f Filter) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Stats holds counts derived from a product list.
type Stats struct {
	Total      int
	InStock    int
	OutOfStock int
	Visible    int
}

// Summarize recomputes catalog statistics from scratch.
func Summarize(products []product.Product) Stats {
	s := Stats{Total: len(products)}
	for _, p := range products {
		switch p.Status {
		case product.StatusInStock:
			s.InStock++
		case product.StatusOutOfStock:
			s.OutOfStock++
		}
		if p.IsVisible {
			s.Visible++
		}
	}
	return s
}

// PriceBounds returns the floor of the lowest price and the ceiling of the
// highest price in the list, for initializing a price-range selector.
// Both are zero for an empty list.
func PriceBounds(products []product.Product) (min, max int64) {
	if len(products) == 0 {
		return 0, 0
	}
	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	return lo.Floor().IntPart(), hi.Ceil().IntPart()
}
