package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"classifieds/pkg/logger"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/cache"
	"classifieds/services/listing/internal/repo/persistent"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+-[a-z0-9]{6}$`)

func TestCreate_AppliesDefaults(t *testing.T) {
	env := newTestEnv(t)

	l, err := env.listings.Create(context.Background(), entity.ListingInput{
		Title:      "  Vintage Armchair ",
		CategoryID: 3,
		UserID:     "seller",
		Currency:   "eur",
	})
	require.NoError(t, err)

	assert.NotZero(t, l.ID)
	assert.Equal(t, "Vintage Armchair", l.Title)
	assert.Equal(t, entity.StatusPending, l.Status)
	assert.Equal(t, entity.ConditionUsed, l.Condition)
	assert.Equal(t, entity.PriceFixed, l.PriceType)
	assert.Equal(t, "EUR", l.Currency)
	assert.Regexp(t, slugPattern, l.Slug)
	assert.Contains(t, l.Slug, "vintage-armchair-")

	events := env.publishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventCreated, events[0].Type)
	assert.Equal(t, l.ID, events[0].ListingID)
	assert.Equal(t, entity.StatusPending, events[0].NewStatus)
}

func TestCreate_SameTitleGetsDistinctSlugs(t *testing.T) {
	env := newTestEnv(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		l := env.create(t, "Same Title", nil)
		assert.False(t, seen[l.Slug], "duplicate slug %s", l.Slug)
		seen[l.Slug] = true
	}
}

func TestCreate_SlugFallbackForSymbolTitle(t *testing.T) {
	env := newTestEnv(t)

	l := env.create(t, "!!!", nil)
	assert.Regexp(t, `^listing-[a-z0-9]{6}$`, l.Slug)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]entity.ListingInput{
		"empty title":    {Title: "   ", UserID: "u"},
		"missing owner":  {Title: "Lamp"},
		"bad status":     {Title: "Lamp", UserID: "u", Status: "archived"},
		"bad condition":  {Title: "Lamp", UserID: "u", Condition: "mint"},
		"bad price type": {Title: "Lamp", UserID: "u", PriceType: "auction"},
		"negative price": {Title: "Lamp", UserID: "u", Price: floatPtr(-1)},
		"lone latitude":  {Title: "Lamp", UserID: "u", Latitude: floatPtr(10)},
		"out of range":   {Title: "Lamp", UserID: "u", Latitude: floatPtr(91), Longitude: floatPtr(0)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.listings.Create(ctx, in)
			assert.ErrorIs(t, err, entity.ErrValidation)
		})
	}
}

func TestUpdate_MergesOnlySuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := env.create(t, "Desk", func(in *entity.ListingInput) {
		in.Description = "Oak desk"
		in.City = "Austin"
		in.CustomFields = entity.CustomFields{
			"width":  entity.NumberValue(120),
			"drawer": entity.BoolValue(true),
		}
	})

	ok, err := env.listings.Update(ctx, l.ID, entity.ListingPatch{
		Title:        strPtr("Standing desk"),
		CustomFields: entity.CustomFields{"height": entity.NumberValue(110)},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := env.listings.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standing desk", got.Title)
	assert.Equal(t, "Oak desk", got.Description)
	assert.Equal(t, "Austin", got.City)
	assert.Equal(t, l.Slug, got.Slug)
	assert.Equal(t, []string{"height"}, got.CustomFields.Keys())
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.listings.Update(context.Background(), 12345, entity.ListingPatch{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_RejectsSingleCoordinate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	l := env.create(t, "Tent", func(in *entity.ListingInput) {
		in.Latitude = floatPtr(1)
		in.Longitude = floatPtr(2)
	})

	_, err := env.listings.Update(ctx, l.ID, entity.ListingPatch{Latitude: floatPtr(5)})
	assert.ErrorIs(t, err, entity.ErrValidation)

	got, err := env.listings.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *got.Latitude)
	assert.Equal(t, 2.0, *got.Longitude)
}

func TestUpdate_ClearsNullableColumns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	l := env.create(t, "Road bike", func(in *entity.ListingInput) {
		in.Price = floatPtr(700)
		in.SubcategoryID = uintPtr(4)
		in.Latitude = floatPtr(48.1)
		in.Longitude = floatPtr(11.6)
	})

	ok, err := env.listings.Update(ctx, l.ID, entity.ListingPatch{
		ClearPrice:       true,
		ClearSubcategory: true,
		ClearCoordinates: true,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := env.listings.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.SubcategoryID)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.Equal(t, "Road bike", got.Title)
}

func TestUpdate_SetAndClearConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	l := env.create(t, "Lamp", nil)

	_, err := env.listings.Update(ctx, l.ID, entity.ListingPatch{Price: floatPtr(10), ClearPrice: true})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = env.listings.Update(ctx, l.ID, entity.ListingPatch{
		Latitude:         floatPtr(1),
		Longitude:        floatPtr(2),
		ClearCoordinates: true,
	})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdate_UnknownListing(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.listings.Update(context.Background(), 999, entity.ListingPatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	l := env.create(t, "Guitar", nil)

	ok, err := env.listings.Delete(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.listings.Get(ctx, l.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	ok, err = env.listings.Delete(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "One", nil)
	env.create(t, "Two", func(in *entity.ListingInput) { in.Status = entity.StatusPending })
	env.create(t, "Other", func(in *entity.ListingInput) { in.UserID = "owner-2" })

	listings, total, err := env.listings.ListByOwner(ctx, "owner-1", nil, 0, -5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, listings, 2)

	pendingQueue, total, err := env.listings.ListPending(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pendingQueue, 1)
	assert.Equal(t, "Two", pendingQueue[0].Title)

	_, _, err = env.listings.ListByOwner(ctx, "", nil, 10, 0)
	assert.ErrorIs(t, err, entity.ErrValidation)

	bad := entity.Status("gone")
	_, _, err = env.listings.ListByOwner(ctx, "owner-1", &bad, 10, 0)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestGet_ReadThroughCache(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	deps := Deps{Cache: cache.NewListingCache(client, time.Minute), Logger: logger.NewNop()}
	uc := NewListingUseCase(persistent.NewListingRepository(db), deps, Options{})
	ctx := context.Background()

	l, err := uc.Create(ctx, entity.ListingInput{Title: "Camera", UserID: "u1", Status: entity.StatusPublished})
	require.NoError(t, err)

	_, err = uc.GetBySlug(ctx, l.Slug)
	require.NoError(t, err)
	assert.True(t, mr.Exists("listing:"+itoa(l.ID)))
	assert.True(t, mr.Exists("listing:slug:"+l.Slug))

	ok, err := uc.Update(ctx, l.ID, entity.ListingPatch{Title: strPtr("Film camera")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, mr.Exists("listing:"+itoa(l.ID)))

	got, err := uc.GetBySlug(ctx, l.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Film camera", got.Title)
}
