package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type ReviewRepository interface {
	// Create returns domain.ErrAlreadyReviewed when (lot_id, user_id) already exists.
	Create(ctx context.Context, review *domain.Review) error
	// UpdateOwned changes rating and comment of the review with id owned by userID.
	// It reports whether a row matched and, if so, the lot that review belongs to.
	UpdateOwned(ctx context.Context, id, userID string, rating int, comment *string, updatedAt time.Time) (lotID string, matched bool, err error)
	FindByLotAndUser(ctx context.Context, lotID, userID string) (*domain.Review, error)
	ListByLot(ctx context.Context, lotID string, limit int) ([]domain.LotReview, error)
	ListByUser(ctx context.Context, userID string) ([]domain.UserReview, error)
}
