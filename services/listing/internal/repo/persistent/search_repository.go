package persistent

import (
	"context"
	"strings"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/gorm"
)

// BoundingBox is an inclusive latitude/longitude window. When SkipLongitude
// is set only the latitude band is applied.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	SkipLongitude  bool
}

type SearchRepository interface {
	Search(ctx context.Context, filter entity.SearchFilter, limit, offset int) ([]*entity.Listing, error)
	Count(ctx context.Context, filter entity.SearchFilter) (int64, error)
	WithinBounds(ctx context.Context, box BoundingBox) ([]*entity.Listing, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

// applyFilter is shared by Search and Count so both see the same rows.
func applyFilter(query *gorm.DB, filter entity.SearchFilter) *gorm.DB {
	query = query.Where("listings.status = ?", string(entity.StatusPublished))

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where(
			"(LOWER(listings.title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(listings.description) LIKE LOWER(?) ESCAPE '\\')",
			pattern, pattern,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("listings.category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("listings.subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.City != "" {
		query = query.Where("LOWER(listings.city) = LOWER(?)", filter.City)
	}
	if filter.State != "" {
		query = query.Where("LOWER(listings.state) = LOWER(?)", filter.State)
	}
	if filter.Country != "" {
		query = query.Where("LOWER(listings.country) = LOWER(?)", filter.Country)
	}
	if filter.Condition != nil {
		query = query.Where("listings.condition = ?", string(*filter.Condition))
	}
	if filter.PriceMin != nil {
		query = query.Where("listings.price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("listings.price <= ?", *filter.PriceMax)
	}
	if filter.UserID != "" {
		query = query.Where("listings.user_id = ?", filter.UserID)
	}
	if filter.FeaturedOnly {
		query = query.Where("listings.featured = ?", true)
	}

	return query
}

func orderClause(sort entity.SortKey) string {
	var key string
	switch sort {
	case entity.SortOldest:
		key = "listings.created_at ASC"
	case entity.SortPriceAsc:
		key = "(listings.price IS NULL) ASC, listings.price ASC"
	case entity.SortPriceDesc:
		key = "(listings.price IS NULL) ASC, listings.price DESC"
	case entity.SortViews:
		key = "listings.views DESC"
	default:
		key = "listings.created_at DESC"
	}
	return "listings.featured DESC, " + key + ", listings.id DESC"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *searchRepository) Search(ctx context.Context, filter entity.SearchFilter, limit, offset int) ([]*entity.Listing, error) {
	var models []model.ListingModel
	err := applyFilter(r.db.WithContext(ctx).Model(&model.ListingModel{}), filter).
		Preload("Images", preloadImages).
		Order(orderClause(filter.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, storageErr("listings.search", err)
	}
	return ToListingEntities(models)
}

func (r *searchRepository) Count(ctx context.Context, filter entity.SearchFilter) (int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&model.ListingModel{}), filter).Count(&total).Error; err != nil {
		return 0, storageErr("listings.count", err)
	}
	return total, nil
}

func (r *searchRepository) WithinBounds(ctx context.Context, box BoundingBox) ([]*entity.Listing, error) {
	query := r.db.WithContext(ctx).Model(&model.ListingModel{}).
		Where("status = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", string(entity.StatusPublished)).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if !box.SkipLongitude {
		query = query.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var models []model.ListingModel
	if err := query.Preload("Images", preloadImages).Order("id DESC").Find(&models).Error; err != nil {
		return nil, storageErr("listings.within_bounds", err)
	}
	return ToListingEntities(models)
}
