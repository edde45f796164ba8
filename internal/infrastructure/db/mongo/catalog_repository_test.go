package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

func viewDoc(id, name string, avg any, count int32) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "roaster", Value: "Norte"},
		{Key: "country", Value: nil},
		{Key: "region", Value: nil},
		{Key: "variety", Value: nil},
		{Key: "process", Value: nil},
		{Key: "roast_level", Value: "light"},
		{Key: "flavor_notes", Value: nil},
		{Key: "image_url", Value: nil},
		{Key: "created_at", Value: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Key: "avg_rating", Value: avg},
		{Key: "reviews_count", Value: count},
	}
}

func TestCatalogRepository_FindByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("unreviewed lot", func(mt *mtest.T) {
		repo := &CatalogRepository{view: mt.Coll, lots: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coffee.lots_with_rating", mtest.FirstBatch,
			viewDoc("lot-1", "Finca Alta", nil, 0)))

		entry, err := repo.FindByID(context.Background(), "lot-1")
		require.NoError(mt, err)
		assert.Equal(mt, "Finca Alta", entry.Name)
		assert.Nil(mt, entry.Country)
		assert.Nil(mt, entry.ImageURL)
		require.NotNil(mt, entry.RoastLevel)
		assert.Equal(mt, "light", *entry.RoastLevel)
		assert.Nil(mt, entry.AvgRating)
		assert.Zero(mt, entry.ReviewsCount)
	})

	mt.Run("missing lot", func(mt *mtest.T) {
		repo := &CatalogRepository{view: mt.Coll, lots: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coffee.lots_with_rating", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, domain.ErrLotNotFound)
	})
}

func TestCatalogRepository_List(t *testing.T) {
	mt := newMockT(t)

	mt.Run("mixed ratings", func(mt *mtest.T) {
		repo := &CatalogRepository{view: mt.Coll, lots: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coffee.lots_with_rating", mtest.FirstBatch,
			viewDoc("lot-1", "Finca Alta", 4.5, 2),
			viewDoc("lot-2", "La Loma", nil, 0),
		))

		got, err := repo.List(context.Background(), ports.CatalogQuery{Sort: domain.SortByRating})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		require.NotNil(mt, got[0].AvgRating)
		assert.InDelta(mt, 4.5, *got[0].AvgRating, 1e-9)
		assert.EqualValues(mt, 2, got[0].ReviewsCount)
		assert.Nil(mt, got[1].AvgRating)
	})

	mt.Run("empty catalog is an empty slice", func(mt *mtest.T) {
		repo := &CatalogRepository{view: mt.Coll, lots: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coffee.lots_with_rating", mtest.FirstBatch))

		got, err := repo.List(context.Background(), ports.CatalogQuery{})
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})
}

func TestRatingViewPipeline_NullAverageWithoutReviews(t *testing.T) {
	stages := ratingViewPipeline()
	require.Len(t, stages, 3)

	// $avg over an empty array yields null, so unreviewed lots keep avg_rating null.
	addFields := stages[1][0]
	assert.Equal(t, "$addFields", addFields.Key)
	fields := addFields.Value.(bson.D)
	assert.Equal(t, bson.E{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$r.rating"}}}, fields[0])
	assert.Equal(t, bson.E{Key: "reviews_count", Value: bson.D{{Key: "$size", Value: "$r"}}}, fields[1])
}
