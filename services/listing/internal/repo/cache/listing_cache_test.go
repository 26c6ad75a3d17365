package cache

import (
	"context"
	"testing"
	"time"

	"classifieds/services/listing/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewListingCache(client, time.Minute), mr
}

func TestListingCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	price := 99.5
	listing := &entity.Listing{
		ID:     7,
		Slug:   "desk-lamp-ab12cd",
		Title:  "Desk lamp",
		Price:  &price,
		Status: entity.StatusPublished,
		CustomFields: entity.CustomFields{
			"color": entity.StringValue("black"),
		},
	}
	require.NoError(t, c.Set(ctx, listing))
	assert.True(t, mr.Exists("listing:7"))
	assert.Equal(t, time.Minute, mr.TTL("listing:7"))

	got, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Desk lamp", got.Title)
	assert.Equal(t, 99.5, *got.Price)
	color, _ := got.CustomFields["color"].String()
	assert.Equal(t, "black", color)

	id, ok, err := c.IDBySlug(ctx, "desk-lamp-ab12cd")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)

	require.NoError(t, c.Invalidate(ctx, 7, "desk-lamp-ab12cd"))
	_, ok, err = c.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.IDBySlug(ctx, "desk-lamp-ab12cd")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListingCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("listing:3", "{not json"))
	_, ok, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("listing:3"))
}

func TestListingCache_ErrorsWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Get(context.Background(), 1)
	assert.Error(t, err)
}
