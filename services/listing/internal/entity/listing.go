package entity

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusSold      Status = "sold"
	StatusPaused    Status = "paused"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPublished, StatusRejected, StatusExpired, StatusSold, StatusPaused:
		return true
	}
	return false
}

type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

type PriceType string

const (
	PriceFixed      PriceType = "fixed"
	PriceNegotiable PriceType = "negotiable"
	PriceFree       PriceType = "free"
	PriceExchange   PriceType = "exchange"
)

func (p PriceType) Valid() bool {
	switch p {
	case PriceFixed, PriceNegotiable, PriceFree, PriceExchange:
		return true
	}
	return false
}

type Listing struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    uint      `json:"category_id"`
	SubcategoryID *uint     `json:"subcategory_id,omitempty"`
	Condition     Condition `json:"condition"`

	// Price is nil when the price is on request.
	Price     *float64  `json:"price"`
	PriceType PriceType `json:"price_type"`
	Currency  string    `json:"currency"`

	City       string   `json:"city"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`

	UserID string `json:"user_id"`

	Status          Status     `json:"status"`
	Featured        bool       `json:"featured"`
	FeaturedUntil   *time.Time `json:"featured_until"`
	ExpiresAt       *time.Time `json:"expires_at"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	CustomFields CustomFields `json:"custom_fields"`

	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []ListingImage `json:"images,omitempty"`

	// DistanceKm is only populated by proximity searches.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

type ListingImage struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing_id"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID uint      `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewEvent is one deduplication record per listing, viewer and UTC day.
type ViewEvent struct {
	ListingID uint
	Viewer    string
	ViewDate  string
	UserID    string
	IP        string
	CreatedAt time.Time
}

type AdvertStats struct {
	Total          int64 `json:"total"`
	Active         int64 `json:"active"`
	Pending        int64 `json:"pending"`
	Expired        int64 `json:"expired"`
	Sold           int64 `json:"sold"`
	Paused         int64 `json:"paused"`
	Rejected       int64 `json:"rejected"`
	TotalViews     int64 `json:"total_views"`
	TotalFavorites int64 `json:"total_favorites"`
}
