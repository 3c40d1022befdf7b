package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Status describes the stock state of a product. The string values match
// what the catalog store holds, so they round-trip without mapping.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// Valid reports whether s is one of the known stock states.
func (s Status) Valid() bool {
	return s == StatusInStock || s == StatusOutOfStock
}

// Product represents a catalog item. ID is assigned by the catalog store on
// insert; it is empty only for a draft that has not been persisted yet.
// Category is optional and may be empty.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Status    Status
	Excerpt   string
	IsVisible bool
	Category  string
}

// Patch describes a partial update to a product. Nil fields are left
// untouched by the store; a visibility toggle is a Patch with only
// IsVisible set.
type Patch struct {
	Name      *string
	Price     *decimal.Decimal
	ImageURL  *string
	Status    *Status
	Excerpt   *string
	IsVisible *bool
	Category  *string
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	return p.Name == nil && p.Price == nil && p.ImageURL == nil &&
		p.Status == nil && p.Excerpt == nil && p.IsVisible == nil && p.Category == nil
}

// FullPatch returns a patch that overwrites every updatable field of p.
// Used by full-form edits, which always submit the complete record.
func FullPatch(p Product) Patch {
	return Patch{
		Name:      &p.Name,
		Price:     &p.Price,
		ImageURL:  &p.ImageURL,
		Status:    &p.Status,
		Excerpt:   &p.Excerpt,
		IsVisible: &p.IsVisible,
		Category:  &p.Category,
	}
}

// Repository defines persistence operations for the product catalog.
// Implementations do not retry and do not serialize concurrent updates to
// the same product; the store resolves concurrent writes last-write-wins.
type Repository interface {
	// List returns all products in stable store order. When onlyVisible
	// is true, filtering on the visibility field happens store-side.
	List(ctx context.Context, onlyVisible bool) ([]Product, error)

	// GetByID returns a single product or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Product, error)

	// Create inserts a draft and returns the store-assigned id.
	Create(ctx context.Context, p Product) (string, error)

	// Update applies a partial update. Returns ErrNotFound when no product
	// with the given id exists.
	Update(ctx context.Context, id string, patch Patch) error

	// Delete removes the product. Deleting an absent product is a no-op.
	Delete(ctx context.Context, id string) error
}
