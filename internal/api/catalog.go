package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/catalog"
)

// catalogResponse carries a filtered, sorted view of the catalog together
// with the derived statistics and price bounds for range selectors.
type catalogResponse struct {
	Products []productResponse `json:"products"`
	Stats    statsResponse     `json:"stats"`
	Bounds   boundsResponse    `json:"priceBounds"`
}

type statsResponse struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
	Visible    int `json:"visible"`
}

type boundsResponse struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// queryCatalog applies the view-model to the full catalog: query, category,
// price range, and visibility predicates combine as a conjunction, followed
// by an optional multi-key sort such as ?sort=price:desc,name.
func (h *Handler) queryCatalog(c echo.Context) error {
	f := catalog.Filter{
		Query:    c.QueryParam("query"),
		Category: c.QueryParam("category"),
	}
	f.VisibleOnly, _ = strconv.ParseBool(c.QueryParam("visible_only"))

	if v := c.QueryParam("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, "invalid min_price")
		}
		f.MinPrice = d
	}
	if v := c.QueryParam("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, "invalid max_price")
		}
		f.MaxPrice = d
	}

	specs, err := catalog.ParseSort(c.QueryParam("sort"))
	if err != nil {
		return badRequest(c, "invalid sort expression")
	}

	products, err := h.products.List(c.Request().Context(), false)
	if err != nil {
		return respondError(c, err)
	}

	filtered := catalog.Sort(catalog.Apply(products, f), specs)
	stats := catalog.Summarize(products)
	minB, maxB := catalog.PriceBounds(products)

	return c.JSON(http.StatusOK, catalogResponse{
		Products: toProductResponses(filtered),
		Stats: statsResponse{
			Total:      stats.Total,
			InStock:    stats.InStock,
			OutOfStock: stats.OutOfStock,
			Visible:    stats.Visible,
		},
		Bounds: boundsResponse{Min: minB, Max: maxB},
	})
}
