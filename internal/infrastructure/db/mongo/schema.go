package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLots     = "lots"
	collectionReviews  = "reviews"
	collectionProfiles = "profiles"
	collectionUsers    = "users"
	viewLotsWithRating = "lots_with_rating"
)

// EnsureSchema creates the indexes and the rating view the repositories rely
// on. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		collectionReviews: {
			{
				Keys:    bson.D{{Key: "lot_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_lot_user"),
			},
			{Keys: bson.D{{Key: "lot_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionLots: {
			{Keys: bson.D{{Key: "country", Value: 1}}},
			{Keys: bson.D{{Key: "roast_level", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}

	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: viewLotsWithRating}})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) == 0 {
		if err := db.CreateView(ctx, viewLotsWithRating, collectionLots, ratingViewPipeline()); err != nil {
			return fmt.Errorf("create view %s: %w", viewLotsWithRating, err)
		}
	}
	return nil
}

// ratingViewPipeline joins each lot with its reviews and computes avg_rating
// (null without reviews) and reviews_count.
func ratingViewPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionReviews},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "lot_id"},
			{Key: "as", Value: "r"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$r.rating"}}},
			{Key: "reviews_count", Value: bson.D{{Key: "$size", Value: "$r"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "r", Value: 0}}}},
	}
}
