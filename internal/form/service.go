package form

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/englelabs/engle-shop/internal/product"
)

// Uploader sends a binary payload to the blob store and returns a stable
// public URL within the call.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
}

// Image is a newly selected image file to upload before saving.
type Image struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// SubmitRequest holds the input for a form submission. An empty ID means
// create; otherwise the product with that id is updated. When Image is set,
// its uploaded URL replaces Fields.ImageURL before validation.
type SubmitRequest struct {
	ID     string
	Fields Fields
	Image  *Image
}

// Service runs the form submission protocol against the blob store and the
// product repository.
type Service struct {
	products product.Repository
	uploads  Uploader
}

// NewService creates a form Service with the required collaborators.
func NewService(products product.Repository, uploads Uploader) *Service {
	return &Service{products: products, uploads: uploads}
}

// Submit executes the submission protocol: upload the new image if one was
// selected, validate the assembled record, then create or update it. Any
// failure leaves prior persisted state untouched. On success the returned
// product carries the store-assigned id.
//
// Failures are distinguishable by type: *UploadError for a blob store
// failure, *ValidationError for field failures; anything else is a store
// error from the repository.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*product.Product, error) {
	fields := req.Fields

	if req.Image != nil {
		url, err := s.uploads.Upload(ctx, req.Image.Filename, req.Image.ContentType, req.Image.Data)
		if err != nil {
			return nil, &UploadError{Err: err}
		}
		fields.ImageURL = url
	}

	if verr := Validate(fields); verr != nil {
		return nil, verr
	}

	p := product.Product{
		ID:        req.ID,
		Name:      fields.Name,
		Price:     fields.Price,
		ImageURL:  fields.ImageURL,
		Status:    fields.Status,
		Excerpt:   fields.Excerpt,
		IsVisible: fields.IsVisible,
		Category:  fields.Category,
	}

	if req.ID == "" {
		id, err := s.products.Create(ctx, p)
		if err != nil {
			return nil, errors.Wrap(err, "create product")
		}
		p.ID = id
		return &p, nil
	}

	if err := s.products.Update(ctx, req.ID, product.FullPatch(p)); err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return &p, nil
}
