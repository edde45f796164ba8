package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, nickname string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ParseToken resolves a bearer token into the identity it was issued for.
	ParseToken(token string) (*domain.Identity, error)
	IsAdmin(actor *domain.Identity) bool
}
