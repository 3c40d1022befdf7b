// Package gcs implements the image uploader on Google Cloud Storage.
// The target bucket is expected to grant allUsers object read access, so
// uploaded objects are publicly addressable without per-object ACLs.
package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-faster/errors"

	"github.com/englelabs/engle-shop/internal/form"
)

// defaultBaseURL is the public endpoint for objects in a public bucket.
const defaultBaseURL = "https://storage.googleapis.com"

var _ form.Uploader = (*Uploader)(nil)

// Uploader writes image payloads to a bucket and returns their public URL.
type Uploader struct {
	client *storage.Client
	bucket string
	prefix string

	// baseURL overrides the public endpoint; empty means the default.
	baseURL string
	now     func() time.Time
}

// NewUploader returns an Uploader targeting the given bucket. Objects are
// placed under prefix (e.g. "products").
func NewUploader(client *storage.Client, bucket, prefix string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Upload writes data to a timestamped object derived from filename and
// returns the object's public URL once the write is fully flushed.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	object := u.objectName(filename)

	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return "", errors.Wrapf(err, "writing object %q", object)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "flushing object %q", object)
	}

	base := u.baseURL
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/%s/%s", base, u.bucket, object), nil
}

// objectName builds a unique object path: a millisecond timestamp plus the
// original filename with whitespace collapsed to underscores.
func (u *Uploader) objectName(filename string) string {
	name := strings.Join(strings.Fields(filename), "_")
	if u.prefix == "" {
		return fmt.Sprintf("%d_%s", u.now().UnixMilli(), name)
	}
	return fmt.Sprintf("%s/%d_%s", u.prefix, u.now().UnixMilli(), name)
}
