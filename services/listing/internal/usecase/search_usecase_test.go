package usecase

import (
	"context"
	"math"
	"testing"

	"classifieds/services/listing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_CountMatchesPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		env.create(t, "Bookshelf", func(in *entity.ListingInput) { in.City = "Lyon" })
	}
	env.create(t, "Bookshelf", func(in *entity.ListingInput) { in.City = "Nice" })
	env.create(t, "Bookshelf", func(in *entity.ListingInput) {
		in.City = "Lyon"
		in.Status = entity.StatusPending
	})

	filter := entity.SearchFilter{Query: "book", City: "lyon"}
	total, err := env.search.Count(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)

	collected := map[uint]bool{}
	for offset := 0; ; offset += 3 {
		page, err := env.search.Search(ctx, filter, 3, offset)
		require.NoError(t, err)
		assert.Equal(t, total, page.Total)
		if len(page.Listings) == 0 {
			break
		}
		for _, l := range page.Listings {
			collected[l.ID] = true
		}
	}
	assert.Len(t, collected, int(total))
}

func TestSearch_LimitDefaultsAndCap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.search.Search(ctx, entity.SearchFilter{}, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 0, res.Offset)

	res, err = env.search.Search(ctx, entity.SearchFilter{}, 5000, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Limit)
}

func TestSearch_InvalidFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.search.Search(ctx, entity.SearchFilter{Sort: "random"}, 10, 0)
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = env.search.Count(ctx, entity.SearchFilter{PriceMin: floatPtr(10), PriceMax: floatPtr(5)})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestNearby(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	center := env.create(t, "At center", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(52.52)
		in.Longitude = floatPtr(13.405)
	})
	near := env.create(t, "Potsdam", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(52.3906)
		in.Longitude = floatPtr(13.0645)
	})
	env.create(t, "Hamburg", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(53.5511)
		in.Longitude = floatPtr(9.9937)
	})
	env.create(t, "No coordinates", nil)
	env.create(t, "Hidden", func(in *entity.ListingInput) {
		in.Status = entity.StatusPaused
		in.Latitude = floatPtr(52.52)
		in.Longitude = floatPtr(13.405)
	})

	results, err := env.search.Nearby(ctx, 52.52, 13.405, 50, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, center.ID, results[0].ID)
	require.NotNil(t, results[0].DistanceKm)
	assert.Equal(t, 0.0, *results[0].DistanceKm)
	assert.False(t, math.IsNaN(*results[0].DistanceKm))

	assert.Equal(t, near.ID, results[1].ID)
	assert.InDelta(t, 27, *results[1].DistanceKm, 2)
}

func TestNearby_HighLatitude(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svalbard := env.create(t, "Svalbard cabin", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(81.05)
		in.Longitude = floatPtr(26.5)
	})

	results, err := env.search.Nearby(ctx, 80, 0, 500, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, svalbard.ID, results[0].ID)
	assert.LessOrEqual(t, *results[0].DistanceKm, 500.0)
}

func TestNearby_FeaturedFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "Close", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(10.0)
		in.Longitude = floatPtr(10.0)
	})
	far := env.create(t, "Further", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(10.1)
		in.Longitude = floatPtr(10.1)
	})
	ok, err := env.lifecycle.SetFeatured(ctx, far.ID, true, nil)
	require.NoError(t, err)
	require.True(t, ok)

	results, err := env.search.Nearby(ctx, 10, 10, 100, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, far.ID, results[0].ID)
}

func TestNearby_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.search.Nearby(ctx, 95, 0, 10, 10)
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = env.search.Nearby(ctx, 0, 200, 10, 10)
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = env.search.Nearby(ctx, 0, 0, 0, 10)
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = env.search.Nearby(ctx, math.NaN(), 0, 10, 10)
	assert.ErrorIs(t, err, entity.ErrValidation)
}
