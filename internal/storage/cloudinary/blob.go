// Package cloudinary implements the image uploader against the Cloudinary
// unsigned upload API. A single POST returns the public URL synchronously;
// there is no async job to poll.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/englelabs/engle-shop/internal/form"
)

var _ form.Uploader = (*Uploader)(nil)

// Uploader posts files to the unsigned image upload endpoint of a
// Cloudinary cloud, authenticated only by an upload preset.
type Uploader struct {
	http      *http.Client
	cloudName string
	preset    string

	// endpoint overrides the upload URL, for tests. Empty means the real
	// Cloudinary endpoint for cloudName.
	endpoint string
}

// NewUploader returns an Uploader for the given cloud and upload preset.
// When client is nil, http.DefaultClient is used.
func NewUploader(client *http.Client, cloudName, preset string) *Uploader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Uploader{http: client, cloudName: cloudName, preset: preset}
}

// Upload sends data as a multipart form and returns the secure URL from the
// upload response.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(fw, data); err != nil {
		return "", errors.Wrap(err, "copy file data")
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", errors.Wrap(err, "write upload preset")
	}
	if err := mw.Close(); err != nil {
		return "", errors.Wrap(err, "finalize form")
	}

	endpoint := u.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.cloudName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("upload rejected: %s: %s", resp.Status, errorMessage(raw))
	}

	url, err := secureURL(raw)
	if err != nil {
		return "", errors.Wrap(err, "decode response")
	}
	return url, nil
}

// secureURL extracts the secure_url field from an upload response.
func secureURL(raw []byte) (string, error) {
	var url string
	d := jx.DecodeBytes(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "secure_url" {
			return d.Skip()
		}
		v, err := d.Str()
		url = v
		return err
	}); err != nil {
		return "", err
	}
	if url == "" {
		return "", errors.New("response has no secure_url")
	}
	return url, nil
}

// errorMessage pulls error.message out of a failure response body, falling
// back to the raw body when it does not parse.
func errorMessage(raw []byte) string {
	var msg string
	d := jx.DecodeBytes(raw)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "error" {
			return d.Skip()
		}
		return d.Obj(func(d *jx.Decoder, key string) error {
			if key != "message" {
				return d.Skip()
			}
			v, err := d.Str()
			msg = v
			return err
		})
	})
	if err != nil || msg == "" {
		return string(raw)
	}
	return msg
}
