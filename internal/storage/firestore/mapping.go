package firestore

import (
	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/product"
)

// productDoc is the Firestore document shape. Prices are stored as float64
// document fields and converted to decimal at this boundary; the field
// names match what the original collection holds.
type productDoc struct {
	Name      string  `firestore:"name"`
	Price     float64 `firestore:"price"`
	ImageURL  string  `firestore:"imageUrl"`
	Status    string  `firestore:"status"`
	Excerpt   string  `firestore:"excerpt"`
	IsVisible bool    `firestore:"isVisible"`
	Category  string  `firestore:"category,omitempty"`
}

func docFromProduct(p product.Product) productDoc {
	return productDoc{
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ImageURL:  p.ImageURL,
		Status:    string(p.Status),
		Excerpt:   p.Excerpt,
		IsVisible: p.IsVisible,
		Category:  p.Category,
	}
}

func (d productDoc) toProduct(id string) product.Product {
	return product.Product{
		ID:        id,
		Name:      d.Name,
		Price:     decimal.NewFromFloat(d.Price),
		ImageURL:  d.ImageURL,
		Status:    product.Status(d.Status),
		Excerpt:   d.Excerpt,
		IsVisible: d.IsVisible,
		Category:  d.Category,
	}
}

func productFromSnapshot(snap *firestore.DocumentSnapshot) (product.Product, error) {
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return product.Product{}, err
	}
	return doc.toProduct(snap.Ref.ID), nil
}

// updatesFromPatch translates a partial update into Firestore field paths.
// Nil patch fields produce no update and leave the stored field untouched.
func updatesFromPatch(p product.Patch) []firestore.Update {
	var updates []firestore.Update
	if p.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *p.Name})
	}
	if p.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: p.Price.InexactFloat64()})
	}
	if p.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *p.ImageURL})
	}
	if p.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*p.Status)})
	}
	if p.Excerpt != nil {
		updates = append(updates, firestore.Update{Path: "excerpt", Value: *p.Excerpt})
	}
	if p.IsVisible != nil {
		updates = append(updates, firestore.Update{Path: "isVisible", Value: *p.IsVisible})
	}
	if p.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *p.Category})
	}
	return updates
}
