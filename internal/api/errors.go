package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/englelabs/engle-shop/internal/cart"
	"github.com/englelabs/engle-shop/internal/form"
	"github.com/englelabs/engle-shop/internal/product"
)

// errorResponse is the uniform JSON error body. Fields is only present for
// validation failures, keyed by the offending field name.
type errorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError maps a domain error onto an HTTP response. Every failure is
// surfaced as a human-readable message and is retryable by user re-action;
// nothing here terminates the session.
func respondError(c echo.Context, err error) error {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
	}

	var uerr *form.UploadError
	if errors.As(err, &uerr) {
		zctx.From(c.Request().Context()).Error("upload failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorResponse{
			Code:    http.StatusBadGateway,
			Message: "Failed to upload image",
		})
	}

	switch {
	case errors.Is(err, product.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Product not found",
		})
	case errors.Is(err, cart.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Cart not found",
		})
	case errors.Is(err, cart.ErrQuantityBelowOne):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Quantity must be at least 1; remove the item instead",
		})
	}

	zctx.From(c.Request().Context()).Error("store failure", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Something went wrong, please try again",
	})
}

// badRequest reports a malformed request body or parameter.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: msg,
	})
}
