package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// SubmitReviewInput creates a review, or updates one when ReviewID is set.
type SubmitReviewInput struct {
	LotID    string  `json:"lot_id" validate:"required,uuid"`
	ReviewID string  `json:"review_id" validate:"omitempty,uuid"`
	Rating   int     `json:"rating" validate:"min=1,max=5"`
	Comment  *string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewService interface {
	SubmitReview(ctx context.Context, actor *domain.Identity, input SubmitReviewInput) error
	ListLotReviews(ctx context.Context, lotID string) ([]domain.LotReview, error)
	GetMyReview(ctx context.Context, actor *domain.Identity, lotID string) (*domain.Review, error)
}
