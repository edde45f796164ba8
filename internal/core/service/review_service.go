package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/metrics"
)

const lotReviewsLimit = 20

type ReviewService struct {
	repo  ports.ReviewRepository
	lots  ports.LotRepository
	views ports.ViewInvalidator
	log   zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, lots ports.LotRepository, views ports.ViewInvalidator, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, lots: lots, views: views, log: log}
}

// SubmitReview creates the actor's review of a lot, or updates it when
// input.ReviewID is set. Updates only ever touch the actor's own review.
func (s *ReviewService) SubmitReview(ctx context.Context, actor *domain.Identity, input ports.SubmitReviewInput) error {
	input.LotID = strings.TrimSpace(input.LotID)
	input.ReviewID = strings.TrimSpace(input.ReviewID)
	if err := validateInput(input); err != nil {
		return err
	}
	if err := requireIdentity(actor); err != nil {
		return err
	}

	comment := optionalPtr(input.Comment)
	now := time.Now().UTC()
	lotID := input.LotID

	if input.ReviewID != "" {
		storedLotID, matched, err := s.repo.UpdateOwned(ctx, input.ReviewID, actor.ID, input.Rating, comment, now)
		if err != nil {
			s.log.Error().Err(err).Str("review_id", input.ReviewID).Msg("failed to update review")
			return domain.Upstream(domain.OpUpdateReview, err)
		}
		if !matched {
			return fmt.Errorf("%w: %w", domain.ErrForbidden, domain.ErrReviewNotFound)
		}
		// The stored review decides which lot view goes stale, not the request.
		lotID = storedLotID
		metrics.ReviewsSubmittedTotal.WithLabelValues("update").Inc()
	} else {
		exists, err := s.lots.Exists(ctx, input.LotID)
		if err != nil {
			s.log.Error().Err(err).Str("lot_id", input.LotID).Msg("failed to look up lot")
			return domain.Upstream(domain.OpCreateReview, err)
		}
		if !exists {
			return domain.ErrLotNotFound
		}
		review := &domain.Review{
			ID:        uuid.NewString(),
			LotID:     input.LotID,
			UserID:    actor.ID,
			Rating:    input.Rating,
			Comment:   comment,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, review); err != nil {
			if errors.Is(err, domain.ErrAlreadyReviewed) {
				metrics.ReviewConflictsTotal.Inc()
				return domain.ErrAlreadyReviewed
			}
			s.log.Error().Err(err).Str("lot_id", input.LotID).Msg("failed to create review")
			return domain.Upstream(domain.OpCreateReview, err)
		}
		metrics.ReviewsSubmittedTotal.WithLabelValues("create").Inc()
	}

	for _, route := range []string{ports.LotRoute(lotID), ports.RouteCatalog, ports.RouteProfile} {
		if err := s.views.Invalidate(ctx, route); err != nil {
			s.log.Warn().Err(err).Str("route", route).Msg("view invalidation failed")
		}
	}
	return nil
}

// ListLotReviews returns the newest reviews of a lot with author nicknames.
func (s *ReviewService) ListLotReviews(ctx context.Context, lotID string) ([]domain.LotReview, error) {
	reviews, err := s.repo.ListByLot(ctx, lotID, lotReviewsLimit)
	if err != nil {
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	return reviews, nil
}

// GetMyReview returns the actor's review of lotID, or domain.ErrReviewNotFound.
func (s *ReviewService) GetMyReview(ctx context.Context, actor *domain.Identity, lotID string) (*domain.Review, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	review, err := s.repo.FindByLotAndUser(ctx, lotID, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return nil, err
		}
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	return review, nil
}
