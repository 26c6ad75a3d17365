package usecase

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"classifieds/pkg/database"
	"classifieds/pkg/logger"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"
	"classifieds/services/listing/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

// testClock is a settable clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	db         *gorm.DB
	clock      *testClock
	publisher  *MockPublisher
	listings   ListingUseCase
	images     ImageUseCase
	categories CategoryUseCase
	search     SearchUseCase
	lifecycle  LifecycleUseCase
	engagement EngagementUseCase
}

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

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	clock := &testClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	deps := Deps{Publisher: publisher, Logger: logger.NewNop()}
	opts := Options{Clock: clock.Now}

	listingRepo := persistent.NewListingRepository(db)
	return &testEnv{
		db:         db,
		clock:      clock,
		publisher:  publisher,
		listings:   NewListingUseCase(listingRepo, deps, opts),
		images:     NewImageUseCase(persistent.NewImageRepository(db), listingRepo, nil, deps, opts),
		categories: NewCategoryUseCase(persistent.NewCategoryRepository(db), deps, opts),
		search:     NewSearchUseCase(persistent.NewSearchRepository(db), deps, opts),
		lifecycle:  NewLifecycleUseCase(listingRepo, deps, opts),
		engagement: NewEngagementUseCase(persistent.NewEngagementRepository(db), deps, opts),
	}
}

func (e *testEnv) create(t *testing.T, title string, mutate func(in *entity.ListingInput)) *entity.Listing {
	t.Helper()

	in := entity.ListingInput{
		Title:      title,
		CategoryID: 1,
		UserID:     "owner-1",
		Status:     entity.StatusPublished,
	}
	if mutate != nil {
		mutate(&in)
	}
	l, err := e.listings.Create(context.Background(), in)
	require.NoError(t, err)
	return l
}

// publishedEvents returns the lifecycle events sent so far.
func (e *testEnv) publishedEvents() []entity.LifecycleEvent {
	var events []entity.LifecycleEvent
	for _, call := range e.publisher.Calls {
		if call.Method != "Publish" {
			continue
		}
		if evt, ok := call.Arguments.Get(2).(entity.LifecycleEvent); ok {
			events = append(events, evt)
		}
	}
	return events
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
