package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// GCSConfig selects the bucket and how to reach it. Endpoint points the
// client at an emulator and disables authentication.
type GCSConfig struct {
	Bucket          string
	PublicBaseURL   string
	CredentialsFile string
	Endpoint        string
}

// GCS stores objects in a Google Cloud Storage bucket.
type GCS struct {
	client     *gcs.Client
	bucket     *gcs.BucketHandle
	publicBase string
}

func NewGCS(ctx context.Context, cfg GCSConfig) (*GCS, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCS{
		client:     client,
		bucket:     client.Bucket(cfg.Bucket),
		publicBase: strings.TrimRight(base, "/"),
	}, nil
}

// Put writes body to path. An existing object is never replaced; the
// DoesNotExist precondition turns that case into domain.ErrObjectExists.
func (g *GCS) Put(ctx context.Context, path, contentType string, body io.Reader) error {
	w := g.bucket.Object(path).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return domain.ErrObjectExists
		}
		return fmt.Errorf("gcs close %s: %w", path, err)
	}
	return nil
}

func (g *GCS) Delete(ctx context.Context, path string) error {
	err := g.bucket.Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", path, err)
	}
	return nil
}

func (g *GCS) PublicURL(path string) string {
	return g.publicBase + "/" + path
}

func (g *GCS) Close() error {
	return g.client.Close()
}
