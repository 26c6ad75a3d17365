package persistent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"classifieds/pkg/database"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func floatPtr(f float64) *float64 { return &f }

func uintPtr(u uint) *uint { return &u }

func timePtr(t time.Time) *time.Time { return &t }

func seedListing(t *testing.T, repo ListingRepository, mutate func(l *entity.Listing)) *entity.Listing {
	t.Helper()

	l := &entity.Listing{
		Slug:       "listing-" + uuid.NewString()[:8],
		Title:      "Road bike",
		CategoryID: 1,
		Condition:  entity.ConditionUsed,
		PriceType:  entity.PriceFixed,
		Currency:   "USD",
		UserID:     "owner-1",
		Status:     entity.StatusPublished,
	}
	if mutate != nil {
		mutate(l)
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}
