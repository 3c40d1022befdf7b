package app

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	gstorage "cloud.google.com/go/storage"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/englelabs/engle-shop/internal/api"
	"github.com/englelabs/engle-shop/internal/cart"
	"github.com/englelabs/engle-shop/internal/form"
	"github.com/englelabs/engle-shop/internal/storage/cloudinary"
	fstorage "github.com/englelabs/engle-shop/internal/storage/firestore"
	gcsblob "github.com/englelabs/engle-shop/internal/storage/gcs"
	"github.com/englelabs/engle-shop/pkg/health"
	"github.com/englelabs/engle-shop/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("project", cfg.Firestore.ProjectID),
		zap.String("blob_provider", cfg.Blob.Provider),
	)

	// Catalog store client.
	fsClient, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID)
	if err != nil {
		return errors.Wrap(err, "create firestore client")
	}
	defer fsClient.Close()

	// Blob store.
	uploads, closeBlob, err := newUploader(ctx, cfg.Blob)
	if err != nil {
		return errors.Wrap(err, "create blob store")
	}
	defer closeBlob()

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("firestore", 5*time.Second, firestoreCheck(fsClient, cfg.Firestore.Collection))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories and domain services.
	productRepo := fstorage.NewProductRepository(fsClient, cfg.Firestore.Collection)
	formSvc := form.NewService(productRepo, uploads)
	cartStore := cart.NewStoreWithCleanup(ctx, cfg.Cart.TTL)

	// HTTP routes.
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api.NewHandler(productRepo, formSvc, cartStore, uploads).Register(e)

	// Mux: health endpoints + API routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/", e)

	handler := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(handler, "engle-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// newUploader builds the configured blob store backend. The returned close
// function releases any underlying client.
func newUploader(ctx context.Context, cfg BlobConfig) (form.Uploader, func(), error) {
	switch cfg.Provider {
	case "gcs":
		client, err := gstorage.NewClient(ctx)
		if err != nil {
			return nil, nil, errors.Wrap(err, "create storage client")
		}
		return gcsblob.NewUploader(client, cfg.Bucket, cfg.Prefix), func() { _ = client.Close() }, nil
	case "cloudinary":
		return cloudinary.NewUploader(nil, cfg.CloudName, cfg.UploadPreset), func() {}, nil
	default:
		return nil, nil, errors.Errorf("unknown blob provider %q", cfg.Provider)
	}
}

// firestoreCheck probes the catalog collection with a single-document read.
// An empty collection is healthy; only transport or permission failures
// mark the check unhealthy.
func firestoreCheck(client *firestore.Client, collection string) health.CheckFunc {
	return func(ctx context.Context) error {
		iter := client.Collection(collection).Limit(1).Documents(ctx)
		defer iter.Stop()
		if _, err := iter.Next(); err != nil && err != iterator.Done {
			return err
		}
		return nil
	}
}
