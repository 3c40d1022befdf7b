// Package firestore implements the product repository on top of Google
// Cloud Firestore: a schemaless document collection keyed by generated ids.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/englelabs/engle-shop/internal/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by a Firestore
// collection. Document ids are the source of truth for product ids; the
// documents themselves carry no id field.
type ProductRepository struct {
	client     *firestore.Client
	collection string
}

// NewProductRepository returns a ProductRepository over the named collection.
func NewProductRepository(client *firestore.Client, collection string) *ProductRepository {
	return &ProductRepository{client: client, collection: collection}
}

func (r *ProductRepository) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// List returns all products. When onlyVisible is true the visibility
// predicate is evaluated store-side with an equality filter.
func (r *ProductRepository) List(ctx context.Context, onlyVisible bool) ([]product.Product, error) {
	var q firestore.Query = r.col().Query
	if onlyVisible {
		q = q.Where("isVisible", "==", true)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []product.Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "listing products")
		}

		p, err := productFromSnapshot(snap)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding product %q", snap.Ref.ID)
		}
		out = append(out, p)
	}
	return out, nil
}

// GetByID returns a single product or product.ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting product %q", id)
	}

	p, err := productFromSnapshot(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding product %q", id)
	}
	return &p, nil
}

// Create inserts a draft and returns the generated document id.
func (r *ProductRepository) Create(ctx context.Context, p product.Product) (string, error) {
	ref, _, err := r.col().Add(ctx, docFromProduct(p))
	if err != nil {
		return "", errors.Wrap(err, "adding product")
	}
	return ref.ID, nil
}

// Update applies a partial field update. Firestore rejects updates to
// missing documents, which maps to product.ErrNotFound.
func (r *ProductRepository) Update(ctx context.Context, id string, patch product.Patch) error {
	updates := updatesFromPatch(patch)
	if len(updates) == 0 {
		return nil
	}

	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return product.ErrNotFound
		}
		return errors.Wrapf(err, "updating product %q", id)
	}
	return nil
}

// Delete removes the product document. Deleting an absent document
// succeeds, matching the repository contract.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "deleting product %q", id)
	}
	return nil
}
