package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub collaborators
// ---------------------------------------------------------------------------

type stubLotRepo struct {
	mu        sync.Mutex
	lots      map[string]*domain.Lot
	createErr error
	failNames map[string]bool // Create fails for lots with these names
	calls     int
}

func newStubLotRepo() *stubLotRepo {
	return &stubLotRepo{lots: make(map[string]*domain.Lot), failNames: make(map[string]bool)}
}

func (r *stubLotRepo) Create(_ context.Context, lot *domain.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	if r.failNames[lot.Name] {
		return errors.New("write conflict")
	}
	clone := *lot
	r.lots[lot.ID] = &clone
	return nil
}

func (r *stubLotRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lots[id]
	return ok, nil
}

func (r *stubLotRepo) byName(name string) *domain.Lot {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lots {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func (r *stubLotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lots)
}

type stubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	deleted []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) Put(_ context.Context, path, _ string, body io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	if _, ok := s.objects[path]; ok {
		return domain.ErrObjectExists
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[path] = data
	return nil
}

func (s *stubStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *stubStorage) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

func (s *stubStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type stubFetcher struct {
	mu     sync.Mutex
	images map[string]*ports.RemoteImage
	calls  []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*ports.RemoteImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if img, ok := f.images[url]; ok {
		return img, nil
	}
	return nil, errors.New("fetch failed")
}

type stubViews struct {
	mu     sync.Mutex
	routes []string
}

func newStubViews() *stubViews {
	return &stubViews{}
}

func (v *stubViews) Invalidate(_ context.Context, route string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.routes = append(v.routes, route)
	return nil
}

func (v *stubViews) invalidated() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := append([]string(nil), v.routes...)
	sort.Strings(out)
	return out
}

type stubIdempotency struct {
	values map[string]string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{values: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, value string, _ time.Duration) error {
	s.values[key] = value
	return nil
}

type stubReviewRepo struct {
	reviews   map[string]*domain.Review
	updateErr error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) error {
	for _, existing := range r.reviews {
		if existing.LotID == review.LotID && existing.UserID == review.UserID {
			return domain.ErrAlreadyReviewed
		}
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *stubReviewRepo) UpdateOwned(_ context.Context, id, userID string, rating int, comment *string, updatedAt time.Time) (string, bool, error) {
	if r.updateErr != nil {
		return "", false, r.updateErr
	}
	existing, ok := r.reviews[id]
	if !ok || existing.UserID != userID {
		return "", false, nil
	}
	existing.Rating = rating
	existing.Comment = comment
	existing.UpdatedAt = updatedAt
	return existing.LotID, true, nil
}

func (r *stubReviewRepo) FindByLotAndUser(_ context.Context, lotID, userID string) (*domain.Review, error) {
	for _, existing := range r.reviews {
		if existing.LotID == lotID && existing.UserID == userID {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) ListByLot(_ context.Context, lotID string, limit int) ([]domain.LotReview, error) {
	var out []domain.LotReview
	for _, existing := range r.reviews {
		if existing.LotID == lotID && len(out) < limit {
			out = append(out, domain.LotReview{Review: *existing})
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ListByUser(_ context.Context, userID string) ([]domain.UserReview, error) {
	var out []domain.UserReview
	for _, existing := range r.reviews {
		if existing.UserID == userID {
			out = append(out, domain.UserReview{Review: *existing})
		}
	}
	return out, nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile
	upsertErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func jsonBody(s string) io.Reader {
	return bytes.NewBufferString(s)
}

func strPtr(s string) *string {
	return &s
}
