package http

import (
	"context"
	"time"

	"classifieds/pkg/logger"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockListingUseCase struct {
	mock.Mock
}

func (m *MockListingUseCase) Create(ctx context.Context, input entity.ListingInput) (*entity.Listing, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) Update(ctx context.Context, id uint, patch entity.ListingPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingUseCase) Get(ctx context.Context, id uint) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) ListByOwner(ctx context.Context, userID string, status *entity.Status, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

type MockImageUseCase struct {
	mock.Mock
}

func (m *MockImageUseCase) AddImage(ctx context.Context, listingID uint, url string, order int, isPrimary bool) (*entity.ListingImage, error) {
	args := m.Called(ctx, listingID, url, order, isPrimary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListingImage), args.Error(1)
}

func (m *MockImageUseCase) UploadImage(ctx context.Context, listingID uint, upload usecase.ImageUpload) (*entity.ListingImage, error) {
	args := m.Called(ctx, listingID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListingImage), args.Error(1)
}

func (m *MockImageUseCase) GetImages(ctx context.Context, listingID uint) ([]entity.ListingImage, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ListingImage), args.Error(1)
}

func (m *MockImageUseCase) DeleteImage(ctx context.Context, imageID uint) (bool, error) {
	args := m.Called(ctx, imageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockImageUseCase) SetPrimary(ctx context.Context, listingID, imageID uint) (bool, error) {
	args := m.Called(ctx, listingID, imageID)
	return args.Bool(0), args.Error(1)
}

type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) GetFlat(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) GetTree(ctx context.Context) ([]*entity.CategoryNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CategoryNode), args.Error(1)
}

func (m *MockCategoryUseCase) Create(ctx context.Context, name string, parentID *uint, sortOrder int) (*entity.Category, error) {
	args := m.Called(ctx, name, parentID, sortOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) SetParent(ctx context.Context, id uint, parentID *uint) (bool, error) {
	args := m.Called(ctx, id, parentID)
	return args.Bool(0), args.Error(1)
}

type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) Search(ctx context.Context, filter entity.SearchFilter, limit, offset int) (*entity.SearchResult, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SearchResult), args.Error(1)
}

func (m *MockSearchUseCase) Count(ctx context.Context, filter entity.SearchFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchUseCase) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]*entity.Listing, error) {
	args := m.Called(ctx, lat, lng, radiusKm, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

type MockLifecycleUseCase struct {
	mock.Mock
}

func (m *MockLifecycleUseCase) Approve(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) Reject(ctx context.Context, id uint, reason string) (bool, error) {
	args := m.Called(ctx, id, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) SetFeatured(ctx context.Context, id uint, featured bool, until *time.Time) (bool, error) {
	args := m.Called(ctx, id, featured, until)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) ExpireOld(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLifecycleUseCase) ExpireFeatured(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLifecycleUseCase) Renew(ctx context.Context, id uint, days int) (bool, error) {
	args := m.Called(ctx, id, days)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) RenewOwned(ctx context.Context, id uint, ownerID string, days int) (bool, error) {
	args := m.Called(ctx, id, ownerID, days)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) MarkAsSold(ctx context.Context, id uint, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) Pause(ctx context.Context, id uint, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleUseCase) Resume(ctx context.Context, id uint, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

type MockEngagementUseCase struct {
	mock.Mock
}

func (m *MockEngagementUseCase) RecordView(ctx context.Context, listingID uint, userID, ip string) (bool, error) {
	args := m.Called(ctx, listingID, userID, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementUseCase) AddFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	args := m.Called(ctx, listingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementUseCase) RemoveFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	args := m.Called(ctx, listingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementUseCase) IsFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	args := m.Called(ctx, listingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementUseCase) GetUserFavorites(ctx context.Context, userID string, limit int) ([]*entity.Listing, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockEngagementUseCase) GetUserAdvertStats(ctx context.Context, userID string) (*entity.AdvertStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AdvertStats), args.Error(1)
}

func (m *MockEngagementUseCase) FavoriteCount(ctx context.Context, listingID uint) (int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ usecase.ListingUseCase    = (*MockListingUseCase)(nil)
	_ usecase.ImageUseCase      = (*MockImageUseCase)(nil)
	_ usecase.CategoryUseCase   = (*MockCategoryUseCase)(nil)
	_ usecase.SearchUseCase     = (*MockSearchUseCase)(nil)
	_ usecase.LifecycleUseCase  = (*MockLifecycleUseCase)(nil)
	_ usecase.EngagementUseCase = (*MockEngagementUseCase)(nil)
)

type mocks struct {
	listings   *MockListingUseCase
	images     *MockImageUseCase
	categories *MockCategoryUseCase
	search     *MockSearchUseCase
	lifecycle  *MockLifecycleUseCase
	engagement *MockEngagementUseCase
}

func newTestHandler() (*ListingHandler, *mocks) {
	m := &mocks{
		listings:   new(MockListingUseCase),
		images:     new(MockImageUseCase),
		categories: new(MockCategoryUseCase),
		search:     new(MockSearchUseCase),
		lifecycle:  new(MockLifecycleUseCase),
		engagement: new(MockEngagementUseCase),
	}
	h := NewListingHandler(m.listings, m.images, m.categories, m.search, m.lifecycle, m.engagement, logger.NewNop())
	return h, m
}

func (m *mocks) assertAll(t mock.TestingT) {
	m.listings.AssertExpectations(t)
	m.images.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.search.AssertExpectations(t)
	m.lifecycle.AssertExpectations(t)
	m.engagement.AssertExpectations(t)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// as attaches a caller identity the way the auth middleware would.
func as(userID, role string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		next(c)
	}
}
