// Package cart implements the shopping cart model and the in-memory session
// store that owns one cart per browsing session.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/product"
)

// ErrQuantityBelowOne is returned by SetQuantity for a quantity below 1.
// Dropping an item below one unit must go through Remove explicitly.
var ErrQuantityBelowOne = errors.New("quantity must be at least 1")

// Item is a cart line item. Product is a snapshot captured at add time:
// a later catalog price change does not alter carts already holding the
// product.
type Item struct {
	Product  product.Product
	Quantity int
}

// Cart holds an ordered list of line items, at most one per product id.
// Items keep first-add order, stable across quantity updates.
//
// Cart is not safe for concurrent use; Store serializes access per session.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges qty into the existing line item for p, or appends a new item
// at the end. A qty below 1 is treated as 1.
func (c *Cart) Add(p product.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: qty})
}

// Remove deletes the line item for productID. Removing an absent item is a
// no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the line item for productID.
// A quantity below 1 is rejected with ErrQuantityBelowOne and leaves the
// cart unchanged. Setting quantity on an absent item is a no-op.
func (c *Cart) SetQuantity(productID string, qty int) error {
	if qty < 1 {
		return ErrQuantityBelowOne
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// Items returns a copy of the line items in first-add order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the sum of quantities across all line items.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total returns the sum of quantity times price-at-add-time over all items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
