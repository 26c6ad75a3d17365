package persistent

import (
	"context"
	"testing"

	"classifieds/services/listing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRepository_SinglePrimary(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	listing := seedListing(t, NewListingRepository(db), nil)
	repo := NewImageRepository(db)

	first := &entity.ListingImage{ListingID: listing.ID, URL: "https://img/a.jpg", SortOrder: 2, IsPrimary: true}
	require.NoError(t, repo.Add(ctx, first))
	second := &entity.ListingImage{ListingID: listing.ID, URL: "https://img/b.jpg", SortOrder: 1}
	require.NoError(t, repo.Add(ctx, second))
	third := &entity.ListingImage{ListingID: listing.ID, URL: "https://img/c.jpg", SortOrder: 3, IsPrimary: true}
	require.NoError(t, repo.Add(ctx, third))

	images, err := repo.ListByListing(ctx, listing.ID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, third.ID, images[0].ID)
	assert.Equal(t, second.ID, images[1].ID)
	assert.Equal(t, first.ID, images[2].ID)
	assert.Equal(t, 1, countPrimary(images))

	ok, err := repo.SetPrimary(ctx, listing.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	images, err = repo.ListByListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Equal(t, 1, countPrimary(images))
}

func TestImageRepository_SetPrimaryRejectsForeignImage(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	listings := NewListingRepository(db)
	a := seedListing(t, listings, nil)
	b := seedListing(t, listings, nil)
	repo := NewImageRepository(db)

	img := &entity.ListingImage{ListingID: b.ID, URL: "https://img/b.jpg"}
	require.NoError(t, repo.Add(ctx, img))

	ok, err := repo.SetPrimary(ctx, a.ID, img.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImageRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	listing := seedListing(t, NewListingRepository(db), nil)
	repo := NewImageRepository(db)

	img := &entity.ListingImage{ListingID: listing.ID, URL: "https://img/a.jpg"}
	require.NoError(t, repo.Add(ctx, img))

	ok, err := repo.Delete(ctx, img.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, img.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func countPrimary(images []entity.ListingImage) int {
	n := 0
	for _, img := range images {
		if img.IsPrimary {
			n++
		}
	}
	return n
}
