// Package form implements the product create/edit form: the field
// validation contract and the submission protocol, including the image
// upload that must succeed before a record can be saved.
package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/product"
)

// MaxExcerptLen bounds the product description length.
const MaxExcerptLen = 500

// MinPrice is the lowest accepted product price.
var MinPrice = decimal.RequireFromString("0.01")

// ValidationError reports field-level failures, keyed by field name.
// Validation errors never reach the catalog store; the caller surfaces them
// next to the offending inputs and keeps the form open for correction.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// UploadError wraps a blob store failure. It is distinct from validation:
// an upload can fail on a record that would otherwise validate cleanly.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Fields is the assembled form content subject to validation.
type Fields struct {
	Name      string
	Price     decimal.Decimal
	Status    product.Status
	Excerpt   string
	IsVisible bool
	ImageURL  string
	Category  string
}

// Validate checks f against the form contract and returns nil when every
// field passes.
func Validate(f Fields) *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "Product name is required"
	}
	if f.Price.LessThan(MinPrice) {
		fields["price"] = "Price must be greater than 0"
	}
	if !f.Status.Valid() {
		fields["status"] = fmt.Sprintf("Status must be %q or %q", product.StatusInStock, product.StatusOutOfStock)
	}
	if len(f.Excerpt) > MaxExcerptLen {
		fields["excerpt"] = fmt.Sprintf("Description must be less than %d characters", MaxExcerptLen)
	}
	if f.ImageURL == "" {
		fields["imageUrl"] = "Product image is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
