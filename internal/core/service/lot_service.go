package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/metrics"
)

const (
	imagePrefix       = "lot-images"
	defaultImageExt   = "jpg"
	idempotencyPrefix = "lot:"
)

// LotOptions bounds uploads and bulk imports. Zero values take defaults.
type LotOptions struct {
	UploadMaxBytes    int64
	ImportMaxBytes    int64
	ImportConcurrency int
	ImportErrorCap    int
	IdempotencyTTL    time.Duration
}

func (o LotOptions) withDefaults() LotOptions {
	if o.UploadMaxBytes <= 0 {
		o.UploadMaxBytes = 10 << 20
	}
	if o.ImportMaxBytes <= 0 {
		o.ImportMaxBytes = 5 << 20
	}
	if o.ImportConcurrency <= 0 {
		o.ImportConcurrency = 4
	}
	if o.ImportErrorCap <= 0 {
		o.ImportErrorCap = 50
	}
	if o.IdempotencyTTL <= 0 {
		o.IdempotencyTTL = 24 * time.Hour
	}
	return o
}

// LotService creates lots one at a time or in bulk.
type LotService struct {
	lots    ports.LotRepository
	storage ports.ObjectStorage
	fetcher ports.ImageFetcher
	views   ports.ViewInvalidator
	idem    ports.IdempotencyStore
	admin   *AdminPolicy
	opts    LotOptions
	log     zerolog.Logger
}

func NewLotService(
	lots ports.LotRepository,
	storage ports.ObjectStorage,
	fetcher ports.ImageFetcher,
	views ports.ViewInvalidator,
	idem ports.IdempotencyStore,
	admin *AdminPolicy,
	opts LotOptions,
	log zerolog.Logger,
) *LotService {
	return &LotService{
		lots:    lots,
		storage: storage,
		fetcher: fetcher,
		views:   views,
		idem:    idem,
		admin:   admin,
		opts:    opts.withDefaults(),
		log:     log,
	}
}

// CreateLot validates input, checks the admin allow-list, stores the optional
// image and inserts the lot. A replayed idempotency key returns the first lot.
func (s *LotService) CreateLot(ctx context.Context, actor *domain.Identity, input ports.CreateLotInput, image *ports.ImageUpload, idempotencyKey string) (*ports.CreateLotResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	fields := fieldsFromCreate(input)
	if err := fields.validate(); err != nil {
		return nil, err
	}
	if err := s.validateImage(image); err != nil {
		return nil, err
	}
	if err := s.admin.Require(actor); err != nil {
		return nil, err
	}

	idemKey := ""
	if k := strings.TrimSpace(idempotencyKey); k != "" {
		idemKey = idempotencyPrefix + actor.ID + ":" + k
		if id, ok := s.lookupIdempotent(ctx, idemKey); ok {
			s.log.Info().Str("idempotency_key", k).Str("lot_id", id).Msg("idempotent replay")
			return &ports.CreateLotResult{LotID: id, AlreadyExisted: true}, nil
		}
	}

	var (
		imageURL   *string
		objectPath string
	)
	if image != nil {
		path, url, err := s.upload(ctx, extFromName(image.Filename), image.ContentType, image.Body)
		if err != nil {
			s.log.Error().Err(err).Str("filename", image.Filename).Msg("failed to upload lot image")
			return nil, domain.Upstream(domain.OpUploadImage, err)
		}
		objectPath, imageURL = path, &url
	}

	lot := fields.lot(uuid.NewString(), imageURL)
	lot.CreatedAt = time.Now().UTC()
	if err := s.lots.Create(ctx, lot); err != nil {
		s.log.Error().Err(err).Str("name", lot.Name).Msg("failed to create lot")
		s.removeObject(ctx, objectPath)
		return nil, domain.Upstream(domain.OpCreateLot, err)
	}
	metrics.LotsCreatedTotal.WithLabelValues("manual").Inc()
	s.log.Info().Str("lot_id", lot.ID).Str("actor", actor.Email).Msg("lot created")

	if idemKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, idemKey, lot.ID, s.opts.IdempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("lot_id", lot.ID).Msg("failed to store idempotency key")
		}
	}
	s.invalidate(ctx, ports.RouteCatalog)

	return &ports.CreateLotResult{LotID: lot.ID}, nil
}

func (s *LotService) validateImage(image *ports.ImageUpload) error {
	if image == nil {
		return nil
	}
	if image.Size > s.opts.UploadMaxBytes {
		return violation("image", "max", fmt.Sprintf("image must be at most %d bytes", s.opts.UploadMaxBytes))
	}
	if ct := imageContentType(image.ContentType, image.Filename); !strings.HasPrefix(ct, "image/") {
		return violation("image", "image", "image must be an image file")
	}
	return nil
}

func (s *LotService) lookupIdempotent(ctx context.Context, key string) (string, bool) {
	if s.idem == nil {
		return "", false
	}
	id, ok, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		return "", false
	}
	return id, ok
}

// upload stores body under a fresh lot-images/<ulid>.<ext> path and returns
// the path and its public URL.
func (s *LotService) upload(ctx context.Context, ext, contentType string, body io.Reader) (string, string, error) {
	path := newObjectPath(ext)
	ct := imageContentType(contentType, path)
	if err := s.storage.Put(ctx, path, ct, body); err != nil {
		return "", "", fmt.Errorf("put %s: %w", path, err)
	}
	return path, s.storage.PublicURL(path), nil
}

// removeObject deletes an orphaned upload. Failures are only logged.
func (s *LotService) removeObject(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to remove orphaned image")
	}
}

func (s *LotService) invalidate(ctx context.Context, route string) {
	if err := s.views.Invalidate(ctx, route); err != nil {
		s.log.Warn().Err(err).Str("route", route).Msg("view invalidation failed")
	}
}

func newObjectPath(ext string) string {
	return fmt.Sprintf("%s/%s.%s", imagePrefix, strings.ToLower(ulid.Make().String()), ext)
}

// extFromName returns the lowercase extension of a file name or URL path,
// or jpg when there is no usable one.
func extFromName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || len(ext) > 5 {
		return defaultImageExt
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultImageExt
		}
	}
	return ext
}

func imageContentType(declared, name string) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
		return mt
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		mt, _, _ := mime.ParseMediaType(ct)
		return mt
	}
	return "application/octet-stream"
}
