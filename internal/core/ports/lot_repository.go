package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// LotRepository persists lots. Absent optional fields are written as explicit nulls.
type LotRepository interface {
	Create(ctx context.Context, lot *domain.Lot) error
	Exists(ctx context.Context, id string) (bool, error)
}
