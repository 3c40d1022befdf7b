// Package api exposes the catalog, cart, and upload operations as a JSON
// HTTP API. Handlers translate transport concerns and delegate all business
// logic to the domain packages.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/cart"
	"github.com/englelabs/engle-shop/internal/form"
	"github.com/englelabs/engle-shop/internal/product"
)

// Handler holds the domain collaborators behind the HTTP surface.
type Handler struct {
	products product.Repository
	form     *form.Service
	carts    *cart.Store
	uploads  form.Uploader
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products product.Repository,
	formSvc *form.Service,
	carts *cart.Store,
	uploads form.Uploader,
) *Handler {
	return &Handler{
		products: products,
		form:     formSvc,
		carts:    carts,
		uploads:  uploads,
	}
}

// Register mounts all API routes under /api.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/products", h.listProducts)
	g.GET("/products/:id", h.getProduct)
	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.PATCH("/products/:id", h.patchProduct)
	g.DELETE("/products/:id", h.deleteProduct)

	g.GET("/catalog", h.queryCatalog)

	g.POST("/uploads", h.uploadImage)

	g.POST("/carts", h.createCart)
	g.GET("/carts/:id", h.getCart)
	g.POST("/carts/:id/items", h.addCartItem)
	g.PATCH("/carts/:id/items/:productID", h.setCartItemQuantity)
	g.DELETE("/carts/:id/items/:productID", h.removeCartItem)
}

// productResponse is the JSON shape of a product. Field names match the
// stored document fields, so the same shape flows through store, API, and
// client.
type productResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Status    string  `json:"status"`
	Excerpt   string  `json:"excerpt"`
	IsVisible bool    `json:"isVisible"`
	Category  string  `json:"category,omitempty"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ImageURL:  p.ImageURL,
		Status:    string(p.Status),
		Excerpt:   p.Excerpt,
		IsVisible: p.IsVisible,
		Category:  p.Category,
	}
}

func toProductResponses(products []product.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// decimalFromFloat converts a JSON number into a price decimal, rounding to
// cents so float noise does not leak into stored prices.
func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
