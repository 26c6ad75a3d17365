package persistent

import (
	"context"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	SetParent(ctx context.Context, id uint, parentID *uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var models []model.CategoryModel
	err := r.db.WithContext(ctx).
		Order("(parent_id IS NOT NULL) ASC, parent_id ASC, sort_order ASC, name ASC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("categories.list", err)
	}

	categories := make([]entity.Category, len(models))
	for i := range models {
		categories[i] = ToCategoryEntity(&models[i])
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var m model.CategoryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storageErr("categories.get", err)
	}
	category := ToCategoryEntity(&m)
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	m := &model.CategoryModel{
		Name:      category.Name,
		ParentID:  category.ParentID,
		SortOrder: category.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storageErr("categories.create", err)
	}
	*category = ToCategoryEntity(m)
	return nil
}

func (r *categoryRepository) SetParent(ctx context.Context, id uint, parentID *uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Update("parent_id", parentID)
	if res.Error != nil {
		return false, storageErr("categories.set_parent", res.Error)
	}
	return res.RowsAffected > 0, nil
}
