package persistent

import (
	"context"
	"time"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id uint) (*entity.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	// List returns listings of any status, newest first. Empty userID or nil
	// status leave that dimension unfiltered.
	List(ctx context.Context, userID string, status *entity.Status, limit, offset int) ([]*entity.Listing, int64, error)

	// Transition applies updates only when the row matches id, one of the
	// from statuses (if any) and ownerID (if non-empty).
	Transition(ctx context.Context, id uint, from []entity.Status, ownerID string, updates map[string]interface{}) (bool, error)
	ExpireBatch(ctx context.Context, now time.Time, batchSize int) ([]uint, error)
	ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("listing_images.is_primary DESC, listing_images.sort_order ASC, listing_images.id ASC")
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	m, err := ToListingModel(listing)
	if err != nil {
		return err
	}
	m.Images = nil

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storageErr("listings.create", err)
	}

	listing.ID = m.ID
	listing.CreatedAt = m.CreatedAt
	listing.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*entity.Listing, error) {
	var m model.ListingModel
	err := r.db.WithContext(ctx).Preload("Images", preloadImages).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, storageErr("listings.get", err)
	}
	return ToListingEntity(&m)
}

func (r *listingRepository) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	var m model.ListingModel
	err := r.db.WithContext(ctx).Preload("Images", preloadImages).Where("slug = ?", slug).First(&m).Error
	if err != nil {
		return nil, storageErr("listings.get_by_slug", err)
	}
	return ToListingEntity(&m)
}

func (r *listingRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ListingModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, storageErr("listings.exists", err)
	}
	return count > 0, nil
}

// Update applies a column map. An entity.CustomFields value under
// "custom_fields" is encoded to JSON first.
func (r *listingRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (bool, error) {
	if fields, ok := updates["custom_fields"].(entity.CustomFields); ok {
		encoded, err := encodeCustomFields(fields)
		if err != nil {
			return false, err
		}
		updates["custom_fields"] = encoded
	}

	res := r.db.WithContext(ctx).Model(&model.ListingModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, storageErr("listings.update", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes children before the listing itself. Steps are not rolled
// back if a later one fails.
func (r *listingRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := r.db.WithContext(ctx)

	if err := db.Where("listing_id = ?", id).Delete(&model.ListingImageModel{}).Error; err != nil {
		return false, storageErr("listings.delete_images", err)
	}
	if err := db.Where("listing_id = ?", id).Delete(&model.FavoriteModel{}).Error; err != nil {
		return false, storageErr("listings.delete_favorites", err)
	}
	if err := db.Where("listing_id = ?", id).Delete(&model.ViewModel{}).Error; err != nil {
		return false, storageErr("listings.delete_views", err)
	}

	res := db.Where("id = ?", id).Delete(&model.ListingModel{})
	if res.Error != nil {
		return false, storageErr("listings.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *listingRepository) List(ctx context.Context, userID string, status *entity.Status, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ListingModel{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageErr("listings.count", err)
	}

	var models []model.ListingModel
	page := query.Preload("Images", preloadImages).Order("created_at DESC, id DESC")
	if limit > 0 {
		page = page.Limit(limit).Offset(offset)
	}
	if err := page.Find(&models).Error; err != nil {
		return nil, 0, storageErr("listings.list", err)
	}

	listings, err := ToListingEntities(models)
	return listings, total, err
}

func (r *listingRepository) Transition(ctx context.Context, id uint, from []entity.Status, ownerID string, updates map[string]interface{}) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.ListingModel{}).Where("id = ?", id)
	if len(from) > 0 {
		statuses := make([]string, len(from))
		for i, s := range from {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if ownerID != "" {
		query = query.Where("user_id = ?", ownerID)
	}

	res := query.Updates(updates)
	if res.Error != nil {
		return false, storageErr("listings.transition", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ExpireBatch expires up to batchSize overdue published listings and returns
// the ids it selected. The UPDATE repeats the full predicate so a listing
// renewed between the select and the update is left alone.
func (r *listingRepository) ExpireBatch(ctx context.Context, now time.Time, batchSize int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.ListingModel{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(entity.StatusPublished), now).
		Order("id ASC").
		Limit(batchSize).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, storageErr("listings.expire_select", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	res := r.db.WithContext(ctx).Model(&model.ListingModel{}).
		Where("id IN ? AND status = ? AND expires_at IS NOT NULL AND expires_at < ?", ids, string(entity.StatusPublished), now).
		Updates(map[string]interface{}{"status": string(entity.StatusExpired), "updated_at": now})
	if res.Error != nil {
		return nil, storageErr("listings.expire_update", res.Error)
	}
	if res.RowsAffected == int64(len(ids)) {
		return ids, nil
	}

	// Some rows moved on between select and update; report only the ones we expired.
	var changed []uint
	err = r.db.WithContext(ctx).Model(&model.ListingModel{}).
		Where("id IN ? AND status = ?", ids, string(entity.StatusExpired)).
		Order("id ASC").
		Pluck("id", &changed).Error
	if err != nil {
		return nil, storageErr("listings.expire_confirm", err)
	}
	return changed, nil
}

func (r *listingRepository) ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ListingModel{}).
		Where("featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Updates(map[string]interface{}{"featured": false, "featured_until": nil})
	if res.Error != nil {
		return 0, storageErr("listings.clear_featured", res.Error)
	}
	return res.RowsAffected, nil
}

// KeepOrSet is an update value that keeps a non-null column and otherwise
// sets it to value.
func KeepOrSet(column string, value interface{}) interface{} {
	return gorm.Expr("COALESCE("+column+", ?)", value)
}
