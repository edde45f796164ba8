package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
}
