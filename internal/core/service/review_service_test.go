package service

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

const (
	testLotID  = "33333333-3333-4333-8333-333333333333"
	otherLotID = "55555555-5555-4555-8555-555555555555"
)

func newReviewFixture() (*ReviewService, *stubReviewRepo, *stubViews) {
	repo := newStubReviewRepo()
	lots := newStubLotRepo()
	lots.lots[testLotID] = &domain.Lot{ID: testLotID, Name: "Finca Alta", Roaster: "Norte"}
	lots.lots[otherLotID] = &domain.Lot{ID: otherLotID, Name: "La Loma", Roaster: "Norte"}
	views := newStubViews()
	return NewReviewService(repo, lots, views, zerolog.Nop()), repo, views
}

func TestReviewService_SubmitReview_Create(t *testing.T) {
	svc, repo, views := newReviewFixture()

	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, Rating: 4, Comment: strPtr(" <b>bright</b> and sweet ")})
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}
	review, err := repo.FindByLotAndUser(context.Background(), testLotID, userActor.ID)
	if err != nil {
		t.Fatalf("review not stored: %v", err)
	}
	if review.UserID != userActor.ID || review.Rating != 4 {
		t.Fatalf("unexpected review %+v", review)
	}
	if review.Comment == nil || *review.Comment != "bright and sweet" {
		t.Fatalf("comment not sanitized: %v", review.Comment)
	}

	want := []string{ports.RouteCatalog, ports.LotRoute(testLotID), ports.RouteProfile}
	slices.Sort(want)
	if got := views.invalidated(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected invalidations %v, got %v", want, got)
	}
}

func TestReviewService_SubmitReview_DuplicateConflict(t *testing.T) {
	svc, _, _ := newReviewFixture()
	in := ports.SubmitReviewInput{LotID: testLotID, Rating: 5}

	if err := svc.SubmitReview(context.Background(), userActor, in); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if err := svc.SubmitReview(context.Background(), userActor, in); !errors.Is(err, domain.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestReviewService_SubmitReview_UpdateOwn(t *testing.T) {
	svc, repo, _ := newReviewFixture()
	if err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, Rating: 2}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	existing, _ := repo.FindByLotAndUser(context.Background(), testLotID, userActor.ID)

	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, ReviewID: existing.ID, Rating: 5})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	updated, _ := repo.FindByLotAndUser(context.Background(), testLotID, userActor.ID)
	if updated.Rating != 5 || updated.Comment != nil {
		t.Fatalf("unexpected updated review %+v", updated)
	}
}

func TestReviewService_SubmitReview_UnknownLot(t *testing.T) {
	svc, repo, views := newReviewFixture()
	const missing = "44444444-4444-4444-8444-444444444444"

	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: missing, Rating: 4})
	if !errors.Is(err, domain.ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound, got %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Fatalf("no review may be stored for an unknown lot, got %d", len(repo.reviews))
	}
	if len(views.invalidated()) != 0 {
		t.Fatalf("unexpected invalidations %v", views.invalidated())
	}
}

func TestReviewService_SubmitReview_UpdateInvalidatesStoredLot(t *testing.T) {
	svc, repo, views := newReviewFixture()
	if err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, Rating: 2}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	existing, _ := repo.FindByLotAndUser(context.Background(), testLotID, userActor.ID)
	before := countRoute(views.invalidated(), ports.LotRoute(testLotID))

	// The request names a different lot than the one the review belongs to.
	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: otherLotID, ReviewID: existing.ID, Rating: 5})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got := views.invalidated()
	if countRoute(got, ports.LotRoute(otherLotID)) != 0 {
		t.Fatalf("request lot route must not be invalidated, got %v", got)
	}
	if countRoute(got, ports.LotRoute(testLotID)) != before+1 {
		t.Fatalf("expected %s to be invalidated again, got %v", ports.LotRoute(testLotID), got)
	}
}

func countRoute(routes []string, route string) int {
	n := 0
	for _, r := range routes {
		if r == route {
			n++
		}
	}
	return n
}

func TestReviewService_SubmitReview_ForeignUpdateIsForbidden(t *testing.T) {
	svc, repo, views := newReviewFixture()
	if err := svc.SubmitReview(context.Background(), adminActor, ports.SubmitReviewInput{LotID: testLotID, Rating: 3}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	theirs, _ := repo.FindByLotAndUser(context.Background(), testLotID, adminActor.ID)
	before := len(views.invalidated())

	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, ReviewID: theirs.ID, Rating: 1})
	if !errors.Is(err, domain.ErrForbidden) || !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrForbidden wrapping ErrReviewNotFound, got %v", err)
	}
	after, _ := repo.FindByLotAndUser(context.Background(), testLotID, adminActor.ID)
	if after.Rating != 3 {
		t.Fatalf("foreign review must be unchanged, got rating %d", after.Rating)
	}
	if len(views.invalidated()) != before {
		t.Fatalf("failed update must not invalidate views")
	}
}

func TestReviewService_SubmitReview_Validation(t *testing.T) {
	svc, repo, _ := newReviewFixture()
	cases := map[string]ports.SubmitReviewInput{
		"rating too low":  {LotID: testLotID, Rating: 0},
		"rating too high": {LotID: testLotID, Rating: 6},
		"bad lot id":      {LotID: "not-a-uuid", Rating: 3},
		"bad review id":   {LotID: testLotID, ReviewID: "42", Rating: 3},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if err := svc.SubmitReview(context.Background(), userActor, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if len(repo.reviews) != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestReviewService_SubmitReview_RequiresIdentity(t *testing.T) {
	svc, _, _ := newReviewFixture()

	if err := svc.SubmitReview(context.Background(), nil, ports.SubmitReviewInput{LotID: testLotID, Rating: 3}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestReviewService_SubmitReview_StoreFailure(t *testing.T) {
	svc, repo, _ := newReviewFixture()
	repo.updateErr = errors.New("timeout")

	err := svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, ReviewID: testLotID, Rating: 3})
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Op != domain.OpUpdateReview {
		t.Fatalf("expected update_review UpstreamError, got %v", err)
	}
}

func TestReviewService_GetMyReview(t *testing.T) {
	svc, _, _ := newReviewFixture()

	if _, err := svc.GetMyReview(context.Background(), userActor, testLotID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
	_ = svc.SubmitReview(context.Background(), userActor, ports.SubmitReviewInput{LotID: testLotID, Rating: 4})
	r, err := svc.GetMyReview(context.Background(), userActor, testLotID)
	if err != nil || r.Rating != 4 {
		t.Fatalf("unexpected review %+v, err %v", r, err)
	}
}
