package domain

import "time"

// Lot is a catalogued coffee offering. Name and Roaster are always set;
// a nil descriptive field means the value is absent.
type Lot struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Roaster     string    `json:"roaster" bson:"roaster"`
	Country     *string   `json:"country" bson:"country"`
	Region      *string   `json:"region" bson:"region"`
	Variety     *string   `json:"variety" bson:"variety"`
	Process     *string   `json:"process" bson:"process"`
	RoastLevel  *string   `json:"roast_level" bson:"roast_level"`
	FlavorNotes *string   `json:"flavor_notes" bson:"flavor_notes"`
	ImageURL    *string   `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CatalogEntry is a Lot plus the rating aggregate computed by the store.
// AvgRating is nil until the lot has a first review.
type CatalogEntry struct {
	Lot          `bson:",inline"`
	AvgRating    *float64 `json:"avg_rating" bson:"avg_rating"`
	ReviewsCount int64    `json:"reviews_count" bson:"reviews_count"`
}

// CatalogSort selects the catalog ordering.
type CatalogSort string

const (
	SortByRating     CatalogSort = "rating"
	SortByPopularity CatalogSort = "popularity"
)

// ParseCatalogSort maps a query value to a sort, defaulting to rating.
func ParseCatalogSort(s string) CatalogSort {
	if CatalogSort(s) == SortByPopularity {
		return SortByPopularity
	}
	return SortByRating
}
