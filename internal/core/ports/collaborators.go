package ports

import (
	"context"
	"io"
	"time"
)

// Routes whose rendered views depend on lots, reviews, or profiles.
const (
	RouteCatalog = "/"
	RouteProfile = "/profile"
)

// LotRoute returns the view route of one lot page.
func LotRoute(lotID string) string {
	return "/lots/" + lotID
}

// ObjectStorage stores uploaded images. Put never overwrites an existing path.
type ObjectStorage interface {
	Put(ctx context.Context, path, contentType string, body io.Reader) error
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// ViewVersion identifies the generation of a route a cached view was read
// against. A value written under a version that has since been invalidated
// is never served.
type ViewVersion struct {
	Route      string
	Generation int64
}

// ViewCache holds rendered read-model views keyed by route.
type ViewCache interface {
	// Get looks key up under the route's current generation and returns that
	// generation, so a later Set cannot outlive an invalidation in between.
	Get(ctx context.Context, route, key string, dst any) (ViewVersion, bool, error)
	Set(ctx context.Context, ver ViewVersion, key string, v any) error
	// Invalidate makes every cached value of route unreachable.
	Invalidate(ctx context.Context, route string) error
}

// ViewInvalidator is the write side of ViewCache.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, route string) error
}

// RemoteImage is a fetched image body.
type RemoteImage struct {
	ContentType string
	Data        []byte
}

// ImageFetcher downloads a remote image, enforcing a timeout, a size cap and an image content type.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*RemoteImage, error)
}

// IdempotencyStore remembers results of create requests for a while.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Remember(ctx context.Context, key, value string, ttl time.Duration) error
}
