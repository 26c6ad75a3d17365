package model

import (
	"time"

	"gorm.io/datatypes"
)

type ListingModel struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Slug            string         `gorm:"type:varchar(300);not null;uniqueIndex" json:"slug"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	SubcategoryID   *uint          `gorm:"index" json:"subcategory_id"`
	Condition       string         `gorm:"type:varchar(20);not null;default:'used'" json:"condition"`
	Price           *float64       `gorm:"type:numeric(12,2)" json:"price"`
	PriceType       string         `gorm:"type:varchar(20);not null;default:'fixed'" json:"price_type"`
	Currency        string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	City            string         `gorm:"type:varchar(100);index" json:"city"`
	State           string         `gorm:"type:varchar(100)" json:"state"`
	Country         string         `gorm:"type:varchar(100);index" json:"country"`
	PostalCode      string         `gorm:"type:varchar(20)" json:"postal_code"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	Phone           string         `gorm:"type:varchar(50)" json:"phone"`
	WhatsApp        string         `gorm:"column:whatsapp;type:varchar(50)" json:"whatsapp"`
	Email           string         `gorm:"type:varchar(255)" json:"email"`
	UserID          string         `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Featured        bool           `gorm:"not null;default:false;index" json:"featured"`
	FeaturedUntil   *time.Time     `json:"featured_until"`
	ExpiresAt       *time.Time     `gorm:"index" json:"expires_at"`
	ApprovedAt      *time.Time     `json:"approved_at"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason"`
	CustomFields    datatypes.JSON `json:"custom_fields"`
	Views           int64          `gorm:"not null;default:0" json:"views"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Images []ListingImageModel `gorm:"foreignKey:ListingID" json:"images,omitempty"`
}

func (ListingModel) TableName() string {
	return "listings"
}

type ListingImageModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingImageModel) TableName() string {
	return "listing_images"
}
