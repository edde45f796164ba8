package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/metrics"
)

var (
	// ErrRejected marks a response that arrived but is not an acceptable image.
	// Rejections do not count against the circuit breaker.
	ErrRejected  = errors.New("remote image rejected")
	ErrTooLarge  = fmt.Errorf("%w: payload too large", ErrRejected)
	ErrNotImage  = fmt.Errorf("%w: not an image", ErrRejected)
	ErrBadStatus = fmt.Errorf("%w: unexpected status", ErrRejected)
)

// Config bounds remote image fetches.
type Config struct {
	Timeout  time.Duration
	MaxBytes int64
	RPS      float64
	Burst    int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 << 20
	}
	if c.RPS <= 0 {
		c.RPS = 5
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	return c
}

// ImageFetcher downloads images referenced by import files. Calls go
// through a rate limiter and a circuit breaker shared by all imports.
type ImageFetcher struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[*ports.RemoteImage]
	limiter *rate.Limiter
	cfg     Config
	log     zerolog.Logger
}

func NewImageFetcher(cfg Config, log zerolog.Logger) *ImageFetcher {
	cfg = cfg.withDefaults()
	f := &ImageFetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cfg:     cfg,
		log:     log,
	}
	f.cb = gobreaker.NewCircuitBreaker[*ports.RemoteImage](gobreaker.Settings{
		Name:        "image-fetch",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return f
}

// Fetch returns the image at url. The body is capped at MaxBytes and must
// carry an image/* content type, either declared or sniffed.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) (*ports.RemoteImage, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	img, err := f.cb.Execute(func() (*ports.RemoteImage, error) {
		return f.get(ctx, url)
	})
	switch {
	case err == nil:
		metrics.ImageFetchTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ImageFetchTotal.WithLabelValues("open").Inc()
	case errors.Is(err, ErrRejected):
		metrics.ImageFetchTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.ImageFetchTotal.WithLabelValues("error").Inc()
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return img, nil
}

func (f *ImageFetcher) get(ctx context.Context, url string) (*ports.RemoteImage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d", ErrBadStatus, resp.StatusCode)
	}
	if resp.ContentLength > f.cfg.MaxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, ErrTooLarge
	}

	ct := contentType(resp.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, ErrNotImage
	}
	return &ports.RemoteImage{ContentType: ct, Data: data}, nil
}

// contentType prefers the declared media type and sniffs the body when the
// server sent none or a generic one.
func contentType(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
