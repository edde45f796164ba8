package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/metrics"
)

type importFile struct {
	Lots *[]ports.ImportRecord `json:"lots"`
}

// recordOutcome is the result of importing one record. err is nil on success.
type recordOutcome struct {
	name string
	err  error
}

// ImportLots parses a {"lots": [...]} document and inserts every record,
// reporting per-record failures without aborting the batch. The catalog view
// is invalidated once at the end.
func (s *LotService) ImportLots(ctx context.Context, actor *domain.Identity, file io.Reader) (*ports.ImportResult, error) {
	if err := s.admin.Require(actor); err != nil {
		return nil, err
	}

	records, err := parseImportFile(file, s.opts.ImportMaxBytes)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outcomes := make([]recordOutcome, len(records))
	var g errgroup.Group
	g.SetLimit(s.opts.ImportConcurrency)
	for i, rec := range records {
		g.Go(func() error {
			outcomes[i] = s.importRecord(ctx, i, rec)
			return nil
		})
	}
	_ = g.Wait()

	result := foldOutcomes(outcomes, s.opts.ImportErrorCap)
	metrics.ImportDuration.Observe(time.Since(start).Seconds())
	metrics.ImportRecordsTotal.WithLabelValues("imported").Add(float64(result.Imported))
	metrics.ImportRecordsTotal.WithLabelValues("failed").Add(float64(result.Failed))
	metrics.LotsCreatedTotal.WithLabelValues("import").Add(float64(result.Imported))

	s.invalidate(ctx, ports.RouteCatalog)
	s.log.Info().
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Str("actor", actor.Email).
		Dur("took", time.Since(start)).
		Msg("lots imported")

	return &result, nil
}

// parseImportFile reads at most maxBytes and decodes the import document.
// Every structural problem is reported as domain.ErrInvalidFile.
func parseImportFile(r io.Reader, maxBytes int64) ([]ports.ImportRecord, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidFile)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrInvalidFile, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidFile, maxBytes)
	}

	var doc importFile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFile, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", domain.ErrInvalidFile)
	}
	if doc.Lots == nil {
		return nil, fmt.Errorf("%w: missing lots array", domain.ErrInvalidFile)
	}
	for i, rec := range *doc.Lots {
		if blank(rec.Name) || blank(rec.Roaster) {
			return nil, fmt.Errorf("%w: record %d lacks name or roaster", domain.ErrInvalidFile, i+1)
		}
	}
	return *doc.Lots, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// importRecord inserts one record. It never panics; a record either ends up
// fully stored or leaves no uploaded object behind.
func (s *LotService) importRecord(ctx context.Context, index int, rec ports.ImportRecord) (out recordOutcome) {
	fields := fieldsFromImport(rec)
	out.name = fields.Name
	if out.name == "" {
		out.name = fmt.Sprintf("record %d", index+1)
	}

	var objectPath string
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("name", out.name).Msg("import record panicked")
			s.removeObject(ctx, objectPath)
			out.err = errors.New("unexpected failure")
		}
	}()

	if err := fields.validate(); err != nil {
		out.err = err
		return out
	}

	imageURL, path := s.resolveRemoteImage(ctx, fields.ImageSource)
	objectPath = path

	lot := fields.lot(uuid.NewString(), imageURL)
	lot.CreatedAt = time.Now().UTC()
	if err := s.lots.Create(ctx, lot); err != nil {
		s.log.Error().Err(err).Str("name", lot.Name).Msg("failed to import lot")
		s.removeObject(ctx, objectPath)
		out.err = errors.New("failed to save lot")
		return out
	}
	return out
}

// resolveRemoteImage copies an http(s) image into object storage. Any other
// value, and any failed fetch or upload, keeps the source string as the URL.
func (s *LotService) resolveRemoteImage(ctx context.Context, src *string) (*string, string) {
	if src == nil || !isRemoteURL(*src) {
		return src, ""
	}
	img, err := s.fetcher.Fetch(ctx, *src)
	if err != nil {
		s.log.Warn().Err(err).Str("url", *src).Msg("image fetch failed, keeping original url")
		return src, ""
	}
	path, publicURL, err := s.upload(ctx, extFromURL(*src), img.ContentType, bytes.NewReader(img.Data))
	if err != nil {
		s.log.Warn().Err(err).Str("url", *src).Msg("image upload failed, keeping original url")
		return src, ""
	}
	return &publicURL, path
}

func isRemoteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func extFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return defaultImageExt
	}
	return extFromName(u.Path)
}

// foldOutcomes turns per-record outcomes into counts and an ordered,
// capped list of "<name>: <reason>" messages.
func foldOutcomes(outcomes []recordOutcome, errorCap int) ports.ImportResult {
	res := ports.ImportResult{Errors: []string{}}
	for _, o := range outcomes {
		if o.err == nil {
			res.Imported++
			continue
		}
		res.Failed++
		if len(res.Errors) < errorCap {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", o.name, reasonOf(o.err)))
		} else {
			res.ErrorsTruncated = true
		}
	}
	return res
}

func reasonOf(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) && len(ve.Violations) > 0 {
		msgs := make([]string, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			msgs = append(msgs, v.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}
