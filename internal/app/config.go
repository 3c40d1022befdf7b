package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (ENGLE_ prefix), flags, or YAML config files.
type Config struct {
	Addr      string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Firestore FirestoreConfig
	Blob      BlobConfig
	Cart      CartConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// FirestoreConfig locates the product catalog collection.
type FirestoreConfig struct {
	ProjectID  string `usage:"GCP project id (ENGLE_FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)" flag:"firestore-project-id"`
	Collection string `default:"products" usage:"Firestore collection holding product documents"`
}

// BlobConfig selects and configures the image storage backend.
type BlobConfig struct {
	Provider string `default:"gcs" usage:"Image storage backend: gcs or cloudinary"`

	// GCS settings.
	Bucket string `usage:"GCS bucket for product images (required for gcs)"`
	Prefix string `default:"products" usage:"Object name prefix inside the bucket"`

	// Cloudinary settings.
	CloudName    string `usage:"Cloudinary cloud name (required for cloudinary)" flag:"blob-cloud-name"`
	UploadPreset string `usage:"Cloudinary unsigned upload preset" flag:"blob-upload-preset"`
}

// CartConfig controls session cart retention.
type CartConfig struct {
	TTL time.Duration `default:"30m" usage:"Idle lifetime of a cart session"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-provided defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ENGLE",
		Files:     []string{"config.yaml", "/etc/engle/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.Firestore.ProjectID == "" {
		return nil, errors.New("project id is required: set ENGLE_FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT")
	}
	switch cfg.Blob.Provider {
	case "gcs":
		if cfg.Blob.Bucket == "" {
			return nil, errors.New("bucket is required for the gcs blob provider: set ENGLE_BLOB_BUCKET")
		}
	case "cloudinary":
		if cfg.Blob.CloudName == "" || cfg.Blob.UploadPreset == "" {
			return nil, errors.New("cloud name and upload preset are required for the cloudinary blob provider")
		}
	default:
		return nil, errors.Errorf("unknown blob provider %q", cfg.Blob.Provider)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Cloud Run, Railway, etc.) that use standard names like
// GOOGLE_CLOUD_PROJECT and PORT to the ENGLE_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Firestore.ProjectID == "" {
		if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
			c.Firestore.ProjectID = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
