package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englelabs/engle-shop/internal/product"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    []SortSpec
		wantErr bool
	}{
		{
			name: "empty expression is the unsorted state",
			expr: "",
			want: nil,
		},
		{
			name: "single key defaults to ascending",
			expr: "name",
			want: []SortSpec{{Key: SortByName, Dir: Ascending}},
		},
		{
			name: "multi key with directions",
			expr: "price:desc,name:asc",
			want: []SortSpec{
				{Key: SortByPrice, Dir: Descending},
				{Key: SortByName, Dir: Ascending},
			},
		},
		{
			name: "whitespace and case are tolerated",
			expr: " Status : DESC , category ",
			want: []SortSpec{
				{Key: SortByStatus, Dir: Descending},
				{Key: SortByCategory, Dir: Ascending},
			},
		},
		{
			name:    "unknown key is rejected",
			expr:    "rating",
			wantErr: true,
		},
		{
			name:    "unknown direction is rejected",
			expr:    "price:sideways",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort(t *testing.T) {
	products := []product.Product{
		{ID: "a", Name: "mug", Price: decimal.NewFromInt(20), Category: "home"},
		{ID: "b", Name: "Bowl", Price: decimal.NewFromInt(10), Category: "home"},
		{ID: "c", Name: "Apron", Price: decimal.NewFromInt(20), Category: "kitchen"},
	}

	tests := []struct {
		name    string
		specs   []SortSpec
		wantIDs []string
	}{
		{
			name:    "no specs keeps insertion order",
			specs:   nil,
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "name ascending is case-insensitive",
			specs:   []SortSpec{{Key: SortByName, Dir: Ascending}},
			wantIDs: []string{"c", "b", "a"},
		},
		{
			name:    "price descending",
			specs:   []SortSpec{{Key: SortByPrice, Dir: Descending}},
			wantIDs: []string{"a", "c", "b"},
		},
		{
			name: "secondary key breaks price ties",
			specs: []SortSpec{
				{Key: SortByPrice, Dir: Descending},
				{Key: SortByName, Dir: Ascending},
			},
			wantIDs: []string{"c", "a", "b"},
		},
		{
			name:    "equal keys keep insertion order (stable)",
			specs:   []SortSpec{{Key: SortByPrice, Dir: Descending}},
			wantIDs: []string{"a", "c", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(products, tt.specs)
			assert.Equal(t, tt.wantIDs, ids(got))

			// Input order must survive sorting.
			assert.Equal(t, []string{"a", "b", "c"}, ids(products))
		})
	}
}
