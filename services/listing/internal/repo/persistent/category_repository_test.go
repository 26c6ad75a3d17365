package persistent

import (
	"context"
	"testing"

	"classifieds/services/listing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListOrdersRootsFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	vehicles := &entity.Category{Name: "Vehicles", SortOrder: 2}
	require.NoError(t, repo.Create(ctx, vehicles))
	electronics := &entity.Category{Name: "Electronics", SortOrder: 1}
	require.NoError(t, repo.Create(ctx, electronics))
	phones := &entity.Category{Name: "Phones", ParentID: uintPtr(electronics.ID)}
	require.NoError(t, repo.Create(ctx, phones))
	cars := &entity.Category{Name: "Cars", ParentID: uintPtr(vehicles.ID)}
	require.NoError(t, repo.Create(ctx, cars))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Electronics", "Vehicles", "Cars", "Phones"}, names)
}

func TestCategoryRepository_SetParent(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	root := &entity.Category{Name: "Home"}
	require.NoError(t, repo.Create(ctx, root))
	child := &entity.Category{Name: "Garden"}
	require.NoError(t, repo.Create(ctx, child))

	ok, err := repo.SetParent(ctx, child.ID, uintPtr(root.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	ok, err = repo.SetParent(ctx, 999, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
