package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

// catalogFilter ANDs every non-empty dimension of q. Search is a literal,
// case-insensitive substring match on name or roaster.
func catalogFilter(q ports.CatalogQuery) bson.D {
	filter := bson.D{}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "roaster", Value: re}},
		}})
	}
	if q.Country != "" {
		filter = append(filter, bson.E{Key: "country", Value: q.Country})
	}
	if q.RoastLevel != "" {
		filter = append(filter, bson.E{Key: "roast_level", Value: q.RoastLevel})
	}
	return filter
}

// catalogSort orders by rating (nulls sort lowest, so they come last) or
// by review count, with the id as a stable tie-break.
func catalogSort(s domain.CatalogSort) bson.D {
	if s == domain.SortByPopularity {
		return bson.D{{Key: "reviews_count", Value: -1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "avg_rating", Value: -1}, {Key: "_id", Value: 1}}
}

// distinctStrings keeps the string values of a Distinct result.
func distinctStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
