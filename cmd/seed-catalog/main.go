// Command seed-catalog loads demo products from a JSON file into the
// Firestore catalog collection. Existing documents are left untouched;
// every run inserts fresh documents with store-assigned ids.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/englelabs/engle-shop/internal/product"
	fstorage "github.com/englelabs/engle-shop/internal/storage/firestore"
)

type productJSON struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Status    string          `json:"status"`
	Excerpt   string          `json:"excerpt"`
	IsVisible bool            `json:"isVisible"`
	Category  string          `json:"category"`
}

func main() {
	var (
		projectID    string
		collection   string
		productsFile string
	)

	flag.StringVar(&projectID, "project-id", "", "GCP project id (or GOOGLE_CLOUD_PROJECT env)")
	flag.StringVar(&collection, "collection", "products", "Firestore collection to seed")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.Parse()

	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		slog.Error("project id is required: set --project-id or GOOGLE_CLOUD_PROJECT")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, projectID, collection, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, projectID, collection, productsFile string) error {
	raw, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var items []productJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return errors.Wrap(err, "parse products file")
	}

	slog.Info("connecting to firestore", slog.String("project", projectID))

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return errors.Wrap(err, "create firestore client")
	}
	defer client.Close()

	repo := fstorage.NewProductRepository(client, collection)

	for _, item := range items {
		id, err := repo.Create(ctx, product.Product{
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Status:    product.Status(item.Status),
			Excerpt:   item.Excerpt,
			IsVisible: item.IsVisible,
			Category:  item.Category,
		})
		if err != nil {
			return errors.Wrapf(err, "seed product %q", item.Name)
		}
		slog.Info("seeded product", slog.String("id", id), slog.String("name", item.Name))
	}

	slog.Info("done", slog.Int("products", len(items)))
	return nil
}
