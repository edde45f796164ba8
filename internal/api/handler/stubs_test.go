package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

var (
	adminID = &domain.Identity{ID: "11111111-1111-1111-1111-111111111111", Email: "admin@example.com"}
	userID  = &domain.Identity{ID: "22222222-2222-2222-2222-222222222222", Email: "user@example.com"}
)

const testLotID = "33333333-3333-3333-3333-333333333333"

// newContext builds an echo context with the validator registered and an
// optional identity, as the router and Auth middleware would.
func newContext(method, target string, body io.Reader, contentType string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set("identity", id)
	}
	return c, rec
}

func jsonRequest(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, strings.NewReader(body), echo.MIMEApplicationJSON, id)
}

type stubAuthService struct {
	signUpFn func(ctx context.Context, email, password, nickname string) (string, *domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	admins   map[string]bool
}

func (s *stubAuthService) SignUp(ctx context.Context, email, password, nickname string) (string, *domain.User, error) {
	return s.signUpFn(ctx, email, password, nickname)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ParseToken(string) (*domain.Identity, error) {
	return nil, domain.ErrUnauthorized
}

func (s *stubAuthService) IsAdmin(actor *domain.Identity) bool {
	return actor != nil && s.admins[actor.Email]
}

type createCall struct {
	actor *domain.Identity
	input ports.CreateLotInput
	image []byte
	key   string
}

type stubLotService struct {
	created  []createCall
	createFn func(call createCall) (*ports.CreateLotResult, error)
	imported []byte
	importFn func() (*ports.ImportResult, error)
}

func (s *stubLotService) CreateLot(_ context.Context, actor *domain.Identity, input ports.CreateLotInput, image *ports.ImageUpload, key string) (*ports.CreateLotResult, error) {
	call := createCall{actor: actor, input: input, key: key}
	if image != nil {
		data, err := io.ReadAll(image.Body)
		if err != nil {
			return nil, err
		}
		call.image = data
	}
	s.created = append(s.created, call)
	return s.createFn(call)
}

func (s *stubLotService) ImportLots(_ context.Context, _ *domain.Identity, file io.Reader) (*ports.ImportResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.imported = data
	return s.importFn()
}

type stubCatalogService struct {
	lastQuery ports.CatalogQuery
	page      *ports.CatalogPage
	entries   map[string]*domain.CatalogEntry
}

func (s *stubCatalogService) ListLots(_ context.Context, q ports.CatalogQuery) (*ports.CatalogPage, error) {
	s.lastQuery = q
	return s.page, nil
}

func (s *stubCatalogService) GetLot(_ context.Context, id string) (*domain.CatalogEntry, error) {
	if e, ok := s.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrLotNotFound
}

type stubReviewService struct {
	submitted []ports.SubmitReviewInput
	submitErr error
	lotList   []domain.LotReview
	mine      map[string]*domain.Review
}

func (s *stubReviewService) SubmitReview(_ context.Context, _ *domain.Identity, in ports.SubmitReviewInput) error {
	s.submitted = append(s.submitted, in)
	return s.submitErr
}

func (s *stubReviewService) ListLotReviews(context.Context, string) ([]domain.LotReview, error) {
	if s.lotList == nil {
		return []domain.LotReview{}, nil
	}
	return s.lotList, nil
}

func (s *stubReviewService) GetMyReview(_ context.Context, actor *domain.Identity, _ string) (*domain.Review, error) {
	if r, ok := s.mine[actor.ID]; ok {
		return r, nil
	}
	return nil, domain.ErrReviewNotFound
}

type stubProfileService struct {
	updated   []ports.UpdateProfileInput
	updateErr error
	view      *ports.ProfileView
}

func (s *stubProfileService) UpdateProfile(_ context.Context, _ *domain.Identity, in ports.UpdateProfileInput) error {
	s.updated = append(s.updated, in)
	return s.updateErr
}

func (s *stubProfileService) GetProfile(_ context.Context, actor *domain.Identity) (*ports.ProfileView, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.view, nil
}
