package persistent

import (
	"context"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository interface {
	// RecordView returns true when the view was new for its (listing, viewer,
	// day) key and the listing counter was bumped. Unknown listings yield false.
	RecordView(ctx context.Context, view *entity.ViewEvent) (bool, error)
	AddFavorite(ctx context.Context, userID string, listingID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID string, listingID uint) (bool, error)
	IsFavorite(ctx context.Context, userID string, listingID uint) (bool, error)
	ListFavoriteListings(ctx context.Context, userID string, limit int) ([]*entity.Listing, error)
	FavoriteCount(ctx context.Context, listingID uint) (int64, error)
	UserStats(ctx context.Context, userID string) (*entity.AdvertStats, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) RecordView(ctx context.Context, view *entity.ViewEvent) (bool, error) {
	counted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.ListingModel{}).Where("id = ?", view.ListingID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return nil
		}

		m := &model.ViewModel{
			ListingID: view.ListingID,
			Viewer:    view.Viewer,
			ViewDate:  view.ViewDate,
			IP:        view.IP,
			CreatedAt: view.CreatedAt,
		}
		if view.UserID != "" {
			userID := view.UserID
			m.UserID = &userID
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}

		if err := tx.Model(&model.ListingModel{}).
			Where("id = ?", view.ListingID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return err
		}
		counted = true
		return nil
	})
	if err != nil {
		return false, storageErr("views.record", err)
	}
	return counted, nil
}

func (r *engagementRepository) AddFavorite(ctx context.Context, userID string, listingID uint) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.ListingModel{}).Where("id = ?", listingID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return nil
		}

		fav := &model.FavoriteModel{UserID: userID, ListingID: listingID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, storageErr("favorites.add", err)
	}
	return added, nil
}

func (r *engagementRepository) RemoveFavorite(ctx context.Context, userID string, listingID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&model.FavoriteModel{})
	if res.Error != nil {
		return false, storageErr("favorites.remove", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) IsFavorite(ctx context.Context, userID string, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteModel{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, storageErr("favorites.is_favorite", err)
	}
	return count > 0, nil
}

func (r *engagementRepository) ListFavoriteListings(ctx context.Context, userID string, limit int) ([]*entity.Listing, error) {
	var models []model.ListingModel
	err := r.db.WithContext(ctx).
		Joins("JOIN listing_favorites ON listing_favorites.listing_id = listings.id").
		Where("listing_favorites.user_id = ? AND listings.status = ?", userID, string(entity.StatusPublished)).
		Preload("Images", preloadImages).
		Order("listing_favorites.created_at DESC, listing_favorites.id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, storageErr("favorites.list", err)
	}
	return ToListingEntities(models)
}

func (r *engagementRepository) FavoriteCount(ctx context.Context, listingID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.FavoriteModel{}).Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
		return 0, storageErr("favorites.count", err)
	}
	return count, nil
}

func (r *engagementRepository) UserStats(ctx context.Context, userID string) (*entity.AdvertStats, error) {
	db := r.db.WithContext(ctx)
	stats := &entity.AdvertStats{}

	err := db.Model(&model.ListingModel{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS expired,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS sold,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS paused,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS rejected`,
			string(entity.StatusPublished),
			string(entity.StatusPending),
			string(entity.StatusExpired),
			string(entity.StatusSold),
			string(entity.StatusPaused),
			string(entity.StatusRejected),
		).
		Where("user_id = ?", userID).
		Scan(stats).Error
	if err != nil {
		return nil, storageErr("stats.listings", err)
	}

	if err := db.Model(&model.ViewModel{}).
		Joins("JOIN listings ON listings.id = listing_views.listing_id").
		Where("listings.user_id = ?", userID).
		Count(&stats.TotalViews).Error; err != nil {
		return nil, storageErr("stats.views", err)
	}

	if err := db.Model(&model.FavoriteModel{}).
		Joins("JOIN listings ON listings.id = listing_favorites.listing_id").
		Where("listings.user_id = ?", userID).
		Count(&stats.TotalFavorites).Error; err != nil {
		return nil, storageErr("stats.favorites", err)
	}

	return stats, nil
}
