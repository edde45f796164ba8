package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

type LotRepository struct {
	col *mongo.Collection
}

func NewLotRepository(db *mongo.Database) *LotRepository {
	return &LotRepository{col: db.Collection(collectionLots)}
}

// Create inserts a lot. Nil optional fields are stored as explicit nulls.
func (r *LotRepository) Create(ctx context.Context, lot *domain.Lot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, lot); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

func (r *LotRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count lot: %w", err)
	}
	return n > 0, nil
}
