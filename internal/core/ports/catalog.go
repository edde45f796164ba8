package ports

import (
	"context"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// CatalogQuery carries the catalog filters. Empty strings mean no filter.
type CatalogQuery struct {
	Search     string             `json:"search,omitempty"`
	Country    string             `json:"country,omitempty"`
	RoastLevel string             `json:"roast_level,omitempty"`
	Sort       domain.CatalogSort `json:"sort"`
}

// Facets lists the distinct filter values present in the catalog.
type Facets struct {
	Countries   []string `json:"countries"`
	RoastLevels []string `json:"roast_levels"`
}

type CatalogPage struct {
	Lots   []domain.CatalogEntry `json:"lots"`
	Facets Facets                `json:"facets"`
}

// CatalogRepository reads the rating-aggregated view of lots.
type CatalogRepository interface {
	List(ctx context.Context, q CatalogQuery) ([]domain.CatalogEntry, error)
	FindByID(ctx context.Context, id string) (*domain.CatalogEntry, error)
	// DistinctValues returns the raw distinct values of field; nulls and blanks may be included.
	DistinctValues(ctx context.Context, field string) ([]string, error)
}

type CatalogService interface {
	ListLots(ctx context.Context, q CatalogQuery) (*CatalogPage, error)
	GetLot(ctx context.Context, id string) (*domain.CatalogEntry, error)
}
