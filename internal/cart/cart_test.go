package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englelabs/engle-shop/internal/product"
)

func mug() product.Product {
	return product.Product{
		ID: "p1", Name: "Mug", Price: decimal.RequireFromString("9.99"),
		Status: product.StatusInStock, IsVisible: true,
	}
}

func shirt() product.Product {
	return product.Product{
		ID: "p2", Name: "Shirt", Price: decimal.RequireFromString("19.99"),
		Status: product.StatusInStock, IsVisible: true,
	}
}

func TestCart_AddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(mug(), 1)
	c.Add(mug(), 1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_AddKeepsFirstAddOrder(t *testing.T) {
	c := New()
	c.Add(mug(), 1)
	c.Add(shirt(), 1)
	c.Add(mug(), 3)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "p2", items[1].Product.ID)
}

func TestCart_AddClampsQuantityToOne(t *testing.T) {
	c := New()
	c.Add(mug(), 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("replaces the quantity", func(t *testing.T) {
		c := New()
		c.Add(mug(), 2)

		require.NoError(t, c.SetQuantity("p1", 5))
		assert.Equal(t, 5, c.Items()[0].Quantity)
	})

	t.Run("zero is rejected and leaves the cart unchanged", func(t *testing.T) {
		c := New()
		c.Add(mug(), 2)

		err := c.SetQuantity("p1", 0)
		require.ErrorIs(t, err, ErrQuantityBelowOne)
		assert.Equal(t, 2, c.Items()[0].Quantity)
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		c := New()
		c.Add(mug(), 2)

		require.NoError(t, c.SetQuantity("nope", 3))
		assert.Equal(t, 2, c.ItemCount())
	})
}

func TestCart_Remove(t *testing.T) {
	c := New()
	c.Add(mug(), 2)
	c.Add(shirt(), 1)

	c.Remove("p1")
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].Product.ID)

	// Removing an absent item is a no-op.
	c.Remove("p1")
	assert.Len(t, c.Items(), 1)
}

func TestCart_AddThenRemoveLeavesEmptyCart(t *testing.T) {
	c := New()
	c.Add(mug(), 2)
	c.Add(mug(), 3)
	c.Remove("p1")

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_Total(t *testing.T) {
	c := New()
	c.Add(mug(), 2)   // 2 * 9.99
	c.Add(shirt(), 1) // 1 * 19.99

	assert.True(t, c.Total().Equal(decimal.RequireFromString("39.97")),
		"total = %s", c.Total())
}

func TestCart_TotalUsesPriceAtAddTime(t *testing.T) {
	p := mug()
	c := New()
	c.Add(p, 1)

	// An admin price change after the add must not alter the cart total.
	p.Price = decimal.RequireFromString("99.99")

	assert.True(t, c.Total().Equal(decimal.RequireFromString("9.99")),
		"total = %s", c.Total())
}

func TestCart_EmptyTotals(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Total().IsZero())
}
