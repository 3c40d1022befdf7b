package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/englelabs/engle-shop/internal/form"
)

// imageContentTypes are the accepted upload payload types.
var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type uploadResponse struct {
	URL string `json:"url"`
}

// uploadImage accepts a single multipart "file" part, pushes it to the blob
// store, and returns the public URL.
func (h *Handler) uploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "a file part named \"file\" is required")
	}

	contentType := fh.Header.Get("Content-Type")
	if !imageContentTypes[contentType] {
		return badRequest(c, "file must be a JPEG, PNG, GIF, or WebP image")
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "unreadable file part")
	}
	defer f.Close()

	url, err := h.uploads.Upload(c.Request().Context(), fh.Filename, contentType, f)
	if err != nil {
		return respondError(c, &form.UploadError{Err: err})
	}
	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}
