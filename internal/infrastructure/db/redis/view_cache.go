package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/metrics"
)

const defaultViewTTL = 5 * time.Minute

// ViewCache stores rendered views under a per-route generation.
// Key format:
//
//	view:gen:<route>               current generation of route
//	view:<route>:<gen>:<key>       cached value
//
// Invalidate bumps the generation, so values written under an older one are
// never read again and simply expire.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

func (c *ViewCache) Get(ctx context.Context, route, key string, dst any) (ports.ViewVersion, bool, error) {
	gen, err := c.generation(ctx, route)
	if err != nil {
		return ports.ViewVersion{}, false, err
	}
	ver := ports.ViewVersion{Route: route, Generation: gen}
	raw, err := c.client.Get(ctx, valueKey(route, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ViewCacheTotal.WithLabelValues("miss").Inc()
		return ver, false, nil
	}
	if err != nil {
		return ver, false, fmt.Errorf("view cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return ver, false, fmt.Errorf("view cache decode: %w", err)
	}
	metrics.ViewCacheTotal.WithLabelValues("hit").Inc()
	return ver, true, nil
}

// Set stores v under the generation returned by Get. If the route was
// invalidated since, the value lands under a stale generation and is never read.
func (c *ViewCache) Set(ctx context.Context, ver ports.ViewVersion, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	if err := c.client.Set(ctx, valueKey(ver.Route, ver.Generation, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("view cache set: %w", err)
	}
	return nil
}

func (c *ViewCache) Invalidate(ctx context.Context, route string) error {
	if err := c.client.Incr(ctx, genKey(route)).Err(); err != nil {
		return fmt.Errorf("view cache invalidate %s: %w", route, err)
	}
	metrics.ViewInvalidationsTotal.WithLabelValues(routeLabel(route)).Inc()
	return nil
}

func (c *ViewCache) generation(ctx context.Context, route string) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(route)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("view cache generation: %w", err)
	}
	return gen, nil
}

func genKey(route string) string {
	return "view:gen:" + route
}

func valueKey(route string, gen int64, key string) string {
	return fmt.Sprintf("view:%s:%d:%s", route, gen, key)
}

// routeLabel folds every lot page into one label value.
func routeLabel(route string) string {
	if strings.HasPrefix(route, "/lots/") {
		return "/lots"
	}
	return route
}
