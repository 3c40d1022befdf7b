package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/englelabs/engle-shop/internal/cart"
)

// cartResponse is the JSON shape of a session cart. Totals are derived on
// every read; item order is first-add order.
type cartResponse struct {
	ID        string             `json:"id"`
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Total     float64            `json:"total"`
}

type cartItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

func toCartResponse(id string, c *cart.Cart) cartResponse {
	items := c.Items()
	out := cartResponse{
		ID:        id,
		Items:     make([]cartItemResponse, len(items)),
		ItemCount: c.ItemCount(),
		Total:     c.Total().InexactFloat64(),
	}
	for i, it := range items {
		out.Items[i] = cartItemResponse{
			Product:  toProductResponse(it.Product),
			Quantity: it.Quantity,
		}
	}
	return out
}

// createCart opens a new cart session.
func (h *Handler) createCart(c echo.Context) error {
	id := h.carts.Create()

	var resp cartResponse
	_ = h.carts.With(id, func(cc *cart.Cart) error {
		resp = toCartResponse(id, cc)
		return nil
	})
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) getCart(c echo.Context) error {
	id := c.Param("id")

	var resp cartResponse
	err := h.carts.With(id, func(cc *cart.Cart) error {
		resp = toCartResponse(id, cc)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// addCartItem snapshots the product at add time and merges it into the
// cart: adding an already-present product increases its quantity.
func (h *Handler) addCartItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed request body")
	}
	if req.ProductID == "" {
		return badRequest(c, "productId is required")
	}

	p, err := h.products.GetByID(c.Request().Context(), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}

	id := c.Param("id")
	var resp cartResponse
	err = h.carts.With(id, func(cc *cart.Cart) error {
		cc.Add(*p, req.Quantity)
		resp = toCartResponse(id, cc)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// setCartItemQuantity replaces a line item quantity. Quantities below 1 are
// rejected; removal is a separate, explicit operation.
func (h *Handler) setCartItemQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed request body")
	}

	id := c.Param("id")
	var resp cartResponse
	err := h.carts.With(id, func(cc *cart.Cart) error {
		if err := cc.SetQuantity(c.Param("productID"), req.Quantity); err != nil {
			return err
		}
		resp = toCartResponse(id, cc)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) removeCartItem(c echo.Context) error {
	id := c.Param("id")
	err := h.carts.With(id, func(cc *cart.Cart) error {
		cc.Remove(c.Param("productID"))
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
