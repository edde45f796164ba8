package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

// CatalogRepository reads the lots_with_rating view. Facet values come from
// the lots collection directly.
type CatalogRepository struct {
	view *mongo.Collection
	lots *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		view: db.Collection(viewLotsWithRating),
		lots: db.Collection(collectionLots),
	}
}

func (r *CatalogRepository) List(ctx context.Context, q ports.CatalogQuery) ([]domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.view.Find(ctx, catalogFilter(q), options.Find().SetSort(catalogSort(q.Sort)))
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	out := []domain.CatalogEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var entry domain.CatalogEntry
	if err := r.view.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLotNotFound
		}
		return nil, fmt.Errorf("find lot: %w", err)
	}
	return &entry, nil
}

func (r *CatalogRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.lots.Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return distinctStrings(values), nil
}
