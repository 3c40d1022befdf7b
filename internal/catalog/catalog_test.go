package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englelabs/engle-shop/internal/product"
)

func fixture() []product.Product {
	return []product.Product{
		{
			ID: "1", Name: "Mug", Price: decimal.RequireFromString("9.99"),
			Category: "home", IsVisible: true, Status: product.StatusInStock,
		},
		{
			ID: "2", Name: "Shirt", Price: decimal.RequireFromString("19.99"),
			Category: "clothing", IsVisible: false, Status: product.StatusOutOfStock,
		},
		{
			ID: "3", Name: "Travel Mug", Price: decimal.RequireFromString("24.50"),
			Category: "home", IsVisible: true, Status: product.StatusOutOfStock,
		},
	}
}

func ids(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{
			name:    "zero filter matches everything in insertion order",
			filter:  Filter{},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name: "visible only excludes hidden products",
			filter: Filter{
				Category: CategoryAll,
				MaxPrice: decimal.NewFromInt(1000),
			},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name: "all predicates conjoin",
			filter: Filter{
				Category:    CategoryAll,
				Query:       "",
				MinPrice:    decimal.Zero,
				MaxPrice:    decimal.NewFromInt(1000),
				VisibleOnly: true,
			},
			wantIDs: []string{"1", "3"},
		},
		{
			name:    "query is a case-insensitive substring match",
			filter:  Filter{Query: "mug"},
			wantIDs: []string{"1", "3"},
		},
		{
			name:    "query matches anywhere in the name",
			filter:  Filter{Query: "RAVel"},
			wantIDs: []string{"3"},
		},
		{
			name:    "category equality",
			filter:  Filter{Category: "clothing"},
			wantIDs: []string{"2"},
		},
		{
			name: "price range is inclusive on both ends",
			filter: Filter{
				MinPrice: decimal.RequireFromString("9.99"),
				MaxPrice: decimal.RequireFromString("19.99"),
			},
			wantIDs: []string{"1", "2"},
		},
		{
			name: "inverted price range yields empty result",
			filter: Filter{
				MinPrice: decimal.NewFromInt(100),
				MaxPrice: decimal.NewFromInt(10),
			},
			wantIDs: []string{},
		},
		{
			name:    "zero max price disables the upper bound",
			filter:  Filter{MinPrice: decimal.NewFromInt(20)},
			wantIDs: []string{"3"},
		},
		{
			name: "conjunction never widens: query matches but category does not",
			filter: Filter{
				Query:    "Mug",
				Category: "clothing",
			},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixture(), tt.filter)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestApply_VisibleOnlyScenario(t *testing.T) {
	products := []product.Product{
		{
			ID: "1", Name: "Mug", Price: decimal.RequireFromString("9.99"),
			Category: "home", IsVisible: true, Status: product.StatusInStock,
		},
		{
			ID: "2", Name: "Shirt", Price: decimal.RequireFromString("19.99"),
			Category: "clothing", IsVisible: false, Status: product.StatusOutOfStock,
		},
	}

	got := Apply(products, Filter{
		Category:    CategoryAll,
		Query:       "",
		MinPrice:    decimal.Zero,
		MaxPrice:    decimal.NewFromInt(1000),
		VisibleOnly: true,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	products := fixture()
	_ = Apply(products, Filter{Query: "mug"})
	assert.Equal(t, ids(fixture()), ids(products))
}

func TestSummarize(t *testing.T) {
	stats := Summarize(fixture())

	assert.Equal(t, Stats{
		Total:      3,
		InStock:    1,
		OutOfStock: 2,
		Visible:    2,
	}, stats)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestPriceBounds(t *testing.T) {
	min, max := PriceBounds(fixture())
	assert.Equal(t, int64(9), min)
	assert.Equal(t, int64(25), max)
}

func TestPriceBounds_Empty(t *testing.T) {
	min, max := PriceBounds(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}
