package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

// Create inserts a review; the unique (lot_id, user_id) index turns a second
// review of the same lot into domain.ErrAlreadyReviewed.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyReviewed
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// UpdateOwned filters on both id and owner, so a foreign review never matches.
func (r *ReviewRepository) UpdateOwned(ctx context.Context, id, userID string, rating int, comment *string, updatedAt time.Time) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var updated struct {
		LotID string `bson:"lot_id"`
	}
	err := r.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: rating},
			{Key: "comment", Value: comment},
			{Key: "updated_at", Value: updatedAt},
		}}},
		options.FindOneAndUpdate().
			SetProjection(bson.D{{Key: "lot_id", Value: 1}}).
			SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("update review: %w", err)
	}
	return updated.LotID, true, nil
}

func (r *ReviewRepository) FindByLotAndUser(ctx context.Context, lotID, userID string) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var review domain.Review
	err := r.col.FindOne(ctx, bson.D{{Key: "lot_id", Value: lotID}, {Key: "user_id", Value: userID}}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

// ListByLot returns the newest reviews of a lot with the author's nickname.
func (r *ReviewRepository) ListByLot(ctx context.Context, lotID string, limit int) ([]domain.LotReview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "lot_id", Value: lotID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionProfiles},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "author_nickname", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$author.nickname", 0}}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "author", Value: 0}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list lot reviews: %w", err)
	}
	out := []domain.LotReview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode lot reviews: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's reviews, newest first, with the reviewed lot.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserReview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionLots},
			{Key: "localField", Value: "lot_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "lot"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "lot", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$lot", 0}}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	out := []domain.UserReview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode user reviews: %w", err)
	}
	return out, nil
}
