package form

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englelabs/engle-shop/internal/product"
)

func validFields() Fields {
	return Fields{
		Name:      "Mug",
		Price:     decimal.RequireFromString("9.99"),
		Status:    product.StatusInStock,
		Excerpt:   "A mug.",
		IsVisible: true,
		ImageURL:  "https://cdn.example.com/mug.jpg",
		Category:  "home",
	}
}

func TestValidate(t *testing.T) {
	longExcerpt := make([]byte, MaxExcerptLen+1)
	for i := range longExcerpt {
		longExcerpt[i] = 'x'
	}

	tests := []struct {
		name       string
		mutate     func(*Fields)
		wantFields []string
	}{
		{
			name:   "valid fields pass",
			mutate: func(*Fields) {},
		},
		{
			name:       "empty name",
			mutate:     func(f *Fields) { f.Name = "  " },
			wantFields: []string{"name"},
		},
		{
			name:       "zero price",
			mutate:     func(f *Fields) { f.Price = decimal.Zero },
			wantFields: []string{"price"},
		},
		{
			name:       "negative price",
			mutate:     func(f *Fields) { f.Price = decimal.NewFromInt(-1) },
			wantFields: []string{"price"},
		},
		{
			name:   "price exactly at the minimum",
			mutate: func(f *Fields) { f.Price = MinPrice },
		},
		{
			name:       "unknown status",
			mutate:     func(f *Fields) { f.Status = "Backordered" },
			wantFields: []string{"status"},
		},
		{
			name:       "excerpt too long",
			mutate:     func(f *Fields) { f.Excerpt = string(longExcerpt) },
			wantFields: []string{"excerpt"},
		},
		{
			name:   "excerpt at the limit",
			mutate: func(f *Fields) { f.Excerpt = string(longExcerpt[1:]) },
		},
		{
			name:       "missing image",
			mutate:     func(f *Fields) { f.ImageURL = "" },
			wantFields: []string{"imageUrl"},
		},
		{
			name:   "category is optional",
			mutate: func(f *Fields) { f.Category = "" },
		},
		{
			name: "multiple failures report every field",
			mutate: func(f *Fields) {
				f.Name = ""
				f.Price = decimal.Zero
				f.ImageURL = ""
			},
			wantFields: []string{"imageUrl", "name", "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			verr := Validate(f)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, verr)
				return
			}

			require.NotNil(t, verr)
			for _, field := range tt.wantFields {
				assert.Contains(t, verr.Fields, field)
			}
			assert.Len(t, verr.Fields, len(tt.wantFields))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{
		"price": "Price must be greater than 0",
		"name":  "Product name is required",
	}}
	assert.Equal(t, "validation failed: name, price", verr.Error())
}
