package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type UpdateProfileInput struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Nickname string `json:"nickname" validate:"required,min=1,max=100"`
}

// ProfileView is a profile page: the nickname plus the user's reviews.
type ProfileView struct {
	Profile *domain.Profile     `json:"profile"`
	Reviews []domain.UserReview `json:"reviews"`
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, actor *domain.Identity, input UpdateProfileInput) error
	GetProfile(ctx context.Context, actor *domain.Identity) (*ProfileView, error)
}
