package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/form"
	"github.com/englelabs/engle-shop/internal/product"
)

// productRequest is the JSON body for create and full-edit submissions.
type productRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Status    string  `json:"status"`
	Excerpt   string  `json:"excerpt"`
	IsVisible bool    `json:"isVisible"`
	Category  string  `json:"category"`
}

func (r productRequest) fields() form.Fields {
	return form.Fields{
		Name:      r.Name,
		Price:     decimalFromFloat(r.Price),
		Status:    product.Status(r.Status),
		Excerpt:   r.Excerpt,
		IsVisible: r.IsVisible,
		ImageURL:  r.ImageURL,
		Category:  r.Category,
	}
}

// listProducts returns the catalog, optionally restricted store-side to
// visible products via ?visible=true.
func (h *Handler) listProducts(c echo.Context) error {
	onlyVisible, _ := strconv.ParseBool(c.QueryParam("visible"))

	products, err := h.products.List(c.Request().Context(), onlyVisible)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *Handler) getProduct(c echo.Context) error {
	p, err := h.products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(*p))
}

// createProduct runs the full form submission protocol: optional image
// upload, validation, then insert. Accepts JSON, or multipart form data
// when a new image file is attached.
func (h *Handler) createProduct(c echo.Context) error {
	return h.submit(c, "")
}

// updateProduct is the full-edit counterpart of createProduct.
func (h *Handler) updateProduct(c echo.Context) error {
	return h.submit(c, c.Param("id"))
}

func (h *Handler) submit(c echo.Context, id string) error {
	req, cleanup, err := h.bindSubmit(c, id)
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer cleanup()

	p, err := h.form.Submit(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, toProductResponse(*p))
}

// bindSubmit assembles a form submission from either a JSON body or a
// multipart form carrying an optional "image" file. The returned cleanup
// closes the opened file, if any.
func (h *Handler) bindSubmit(c echo.Context, id string) (form.SubmitRequest, func(), error) {
	cleanup := func() {}
	ct := c.Request().Header.Get(echo.HeaderContentType)

	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		var req productRequest
		if err := c.Bind(&req); err != nil {
			return form.SubmitRequest{}, cleanup, err
		}
		return form.SubmitRequest{ID: id, Fields: req.fields()}, cleanup, nil
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		price = decimal.Zero
	}
	isVisible, _ := strconv.ParseBool(c.FormValue("isVisible"))

	req := form.SubmitRequest{
		ID: id,
		Fields: form.Fields{
			Name:      c.FormValue("name"),
			Price:     price,
			Status:    product.Status(c.FormValue("status")),
			Excerpt:   c.FormValue("excerpt"),
			IsVisible: isVisible,
			ImageURL:  c.FormValue("imageUrl"),
			Category:  c.FormValue("category"),
		},
	}

	fh, err := c.FormFile("image")
	if err != nil {
		// No new image selected; the existing imageUrl field stands.
		return req, cleanup, nil
	}

	f, err := fh.Open()
	if err != nil {
		return form.SubmitRequest{}, cleanup, err
	}
	cleanup = func() { _ = f.Close() }
	req.Image = &form.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        f,
	}
	return req, cleanup, nil
}

// productPatchRequest is the JSON body for partial updates; absent fields
// stay untouched. The visibility toggle sends only isVisible.
type productPatchRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	ImageURL  *string  `json:"imageUrl"`
	Status    *string  `json:"status"`
	Excerpt   *string  `json:"excerpt"`
	IsVisible *bool    `json:"isVisible"`
	Category  *string  `json:"category"`
}

func (h *Handler) patchProduct(c echo.Context) error {
	var req productPatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed request body")
	}

	patch := product.Patch{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		Excerpt:   req.Excerpt,
		IsVisible: req.IsVisible,
		Category:  req.Category,
	}
	if req.Price != nil {
		price := decimalFromFloat(*req.Price)
		patch.Price = &price
	}
	if req.Status != nil {
		status := product.Status(*req.Status)
		if !status.Valid() {
			return badRequest(c, "invalid status")
		}
		patch.Status = &status
	}

	if err := h.products.Update(c.Request().Context(), c.Param("id"), patch); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
