package model

import "time"

type FavoriteModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_listing_favorites_pair,priority:1" json:"user_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_listing_favorites_pair,priority:2;index" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteModel) TableName() string {
	return "listing_favorites"
}

// ViewModel is unique per (listing, viewer, day); Viewer is "u:<id>" or "ip:<addr>".
type ViewModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_listing_views_dedup,priority:1" json:"listing_id"`
	Viewer    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_listing_views_dedup,priority:2" json:"viewer"`
	ViewDate  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_listing_views_dedup,priority:3" json:"view_date"`
	UserID    *string   `gorm:"type:varchar(64)" json:"user_id"`
	IP        string    `gorm:"column:ip;type:varchar(45)" json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

func (ViewModel) TableName() string {
	return "listing_views"
}
