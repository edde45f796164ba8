package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

func TestCatalogFilter_Empty(t *testing.T) {
	if got := catalogFilter(ports.CatalogQuery{}); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestCatalogFilter_AllDimensions(t *testing.T) {
	got := catalogFilter(ports.CatalogQuery{Search: "a.b (c)", Country: "Kenya", RoastLevel: "light"})

	re := primitive.Regex{Pattern: `a\.b \(c\)`, Options: "i"}
	want := bson.D{
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "roaster", Value: re}},
		}},
		{Key: "country", Value: "Kenya"},
		{Key: "roast_level", Value: "light"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("catalogFilter =\n%v\nwant\n%v", got, want)
	}
}

func TestCatalogSort(t *testing.T) {
	if got := catalogSort(domain.SortByPopularity); got[0].Key != "reviews_count" || got[0].Value != -1 {
		t.Fatalf("unexpected popularity sort %v", got)
	}
	got := catalogSort(domain.SortByRating)
	if got[0].Key != "avg_rating" || got[1].Key != "_id" || got[1].Value != 1 {
		t.Fatalf("unexpected rating sort %v", got)
	}
}

func TestDistinctStrings(t *testing.T) {
	got := distinctStrings([]interface{}{"Kenya", nil, 3, "Peru"})
	if want := []string{"Kenya", "Peru"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("distinctStrings = %v, want %v", got, want)
	}
}

func TestRatingViewPipeline(t *testing.T) {
	p := ratingViewPipeline()
	if len(p) != 3 || p[0][0].Key != "$lookup" || p[2][0].Key != "$project" {
		t.Fatalf("unexpected pipeline %v", p)
	}
}
