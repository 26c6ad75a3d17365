package persistent

import (
	"context"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/gorm"
)

type ImageRepository interface {
	Add(ctx context.Context, image *entity.ListingImage) error
	Get(ctx context.Context, imageID uint) (*entity.ListingImage, error)
	ListByListing(ctx context.Context, listingID uint) ([]entity.ListingImage, error)
	Delete(ctx context.Context, imageID uint) (bool, error)
	SetPrimary(ctx context.Context, listingID, imageID uint) (bool, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

// Add inserts the image. A primary image demotes the listing's other images
// in the same transaction.
func (r *imageRepository) Add(ctx context.Context, image *entity.ListingImage) error {
	m := &model.ListingImageModel{
		ListingID: image.ListingID,
		URL:       image.URL,
		SortOrder: image.SortOrder,
		IsPrimary: image.IsPrimary,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.IsPrimary {
			if err := tx.Model(&model.ListingImageModel{}).
				Where("listing_id = ? AND is_primary = ?", m.ListingID, true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return storageErr("images.add", err)
	}

	*image = ToListingImageEntity(m)
	return nil
}

func (r *imageRepository) Get(ctx context.Context, imageID uint) (*entity.ListingImage, error) {
	var m model.ListingImageModel
	if err := r.db.WithContext(ctx).Where("id = ?", imageID).First(&m).Error; err != nil {
		return nil, storageErr("images.get", err)
	}
	image := ToListingImageEntity(&m)
	return &image, nil
}

func (r *imageRepository) ListByListing(ctx context.Context, listingID uint) ([]entity.ListingImage, error) {
	var models []model.ListingImageModel
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("is_primary DESC, sort_order ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("images.list", err)
	}

	images := make([]entity.ListingImage, len(models))
	for i := range models {
		images[i] = ToListingImageEntity(&models[i])
	}
	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", imageID).Delete(&model.ListingImageModel{})
	if res.Error != nil {
		return false, storageErr("images.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *imageRepository) SetPrimary(ctx context.Context, listingID, imageID uint) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ListingImageModel{}).
			Where("id = ? AND listing_id = ?", imageID, listingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		if err := tx.Model(&model.ListingImageModel{}).
			Where("listing_id = ? AND id <> ? AND is_primary = ?", listingID, imageID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.ListingImageModel{}).
			Where("id = ?", imageID).
			Update("is_primary", true).Error
	})
	if err != nil {
		return false, storageErr("images.set_primary", err)
	}
	return found, nil
}
