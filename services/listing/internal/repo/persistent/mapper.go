package persistent

import (
	"encoding/json"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/model"

	"gorm.io/datatypes"
)

func ToListingEntity(m *model.ListingModel) (*entity.Listing, error) {
	if m == nil {
		return nil, nil
	}

	listing := &entity.Listing{
		ID:              m.ID,
		Slug:            m.Slug,
		Title:           m.Title,
		Description:     m.Description,
		CategoryID:      m.CategoryID,
		SubcategoryID:   m.SubcategoryID,
		Condition:       entity.Condition(m.Condition),
		Price:           m.Price,
		PriceType:       entity.PriceType(m.PriceType),
		Currency:        m.Currency,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		PostalCode:      m.PostalCode,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		Phone:           m.Phone,
		WhatsApp:        m.WhatsApp,
		Email:           m.Email,
		UserID:          m.UserID,
		Status:          entity.Status(m.Status),
		Featured:        m.Featured,
		FeaturedUntil:   m.FeaturedUntil,
		ExpiresAt:       m.ExpiresAt,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		Views:           m.Views,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	fields, err := decodeCustomFields(m.CustomFields)
	if err != nil {
		return nil, err
	}
	listing.CustomFields = fields

	if len(m.Images) > 0 {
		listing.Images = make([]entity.ListingImage, len(m.Images))
		for i := range m.Images {
			listing.Images[i] = ToListingImageEntity(&m.Images[i])
		}
	}

	return listing, nil
}

func ToListingEntities(models []model.ListingModel) ([]*entity.Listing, error) {
	listings := make([]*entity.Listing, 0, len(models))
	for i := range models {
		listing, err := ToListingEntity(&models[i])
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func ToListingModel(e *entity.Listing) (*model.ListingModel, error) {
	if e == nil {
		return nil, nil
	}

	fields, err := encodeCustomFields(e.CustomFields)
	if err != nil {
		return nil, err
	}

	return &model.ListingModel{
		ID:              e.ID,
		Slug:            e.Slug,
		Title:           e.Title,
		Description:     e.Description,
		CategoryID:      e.CategoryID,
		SubcategoryID:   e.SubcategoryID,
		Condition:       string(e.Condition),
		Price:           e.Price,
		PriceType:       string(e.PriceType),
		Currency:        e.Currency,
		City:            e.City,
		State:           e.State,
		Country:         e.Country,
		PostalCode:      e.PostalCode,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		Phone:           e.Phone,
		WhatsApp:        e.WhatsApp,
		Email:           e.Email,
		UserID:          e.UserID,
		Status:          string(e.Status),
		Featured:        e.Featured,
		FeaturedUntil:   e.FeaturedUntil,
		ExpiresAt:       e.ExpiresAt,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CustomFields:    fields,
		Views:           e.Views,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}, nil
}

func ToListingImageEntity(m *model.ListingImageModel) entity.ListingImage {
	if m == nil {
		return entity.ListingImage{}
	}

	return entity.ListingImage{
		ID:        m.ID,
		ListingID: m.ListingID,
		URL:       m.URL,
		SortOrder: m.SortOrder,
		IsPrimary: m.IsPrimary,
		CreatedAt: m.CreatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) entity.Category {
	return entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		ParentID:  m.ParentID,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
	}
}

func encodeCustomFields(fields entity.CustomFields) (datatypes.JSON, error) {
	if fields == nil {
		return datatypes.JSON("{}"), nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, entity.NewValidationError("custom_fields", err.Error())
	}
	return datatypes.JSON(raw), nil
}

func decodeCustomFields(raw datatypes.JSON) (entity.CustomFields, error) {
	fields := entity.CustomFields{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, entity.NewStorageError("listings.decode_custom_fields", err)
	}
	return fields, nil
}
