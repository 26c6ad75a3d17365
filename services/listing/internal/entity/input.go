package entity

import "time"

// ListingInput carries the caller-supplied fields of a new listing.
type ListingInput struct {
	Title         string
	Description   string
	CategoryID    uint
	SubcategoryID *uint
	Condition     Condition
	Price         *float64
	PriceType     PriceType
	Currency      string
	City          string
	State         string
	Country       string
	PostalCode    string
	Latitude      *float64
	Longitude     *float64
	Phone         string
	WhatsApp      string
	Email         string
	UserID        string
	CustomFields  CustomFields
	ExpiresAt     *time.Time

	// Status overrides the default pending status when non-empty.
	Status Status
}

// ListingPatch holds a partial update; nil fields are left untouched.
// CustomFields, when non-nil, replaces the whole map. The Clear flags set
// nullable columns back to NULL and cannot be combined with a new value.
type ListingPatch struct {
	Title         *string
	Description   *string
	CategoryID    *uint
	SubcategoryID *uint
	Condition     *Condition
	Price         *float64
	PriceType     *PriceType
	Currency      *string
	City          *string
	State         *string
	Country       *string
	PostalCode    *string
	Latitude      *float64
	Longitude     *float64
	Phone         *string
	WhatsApp      *string
	Email         *string
	CustomFields  CustomFields
	ExpiresAt     *time.Time

	ClearPrice       bool
	ClearSubcategory bool
	ClearCoordinates bool
	ClearExpiresAt   bool
}

func (p ListingPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.CategoryID == nil && p.SubcategoryID == nil &&
		p.Condition == nil && p.Price == nil && p.PriceType == nil && p.Currency == nil &&
		p.City == nil && p.State == nil && p.Country == nil && p.PostalCode == nil &&
		p.Latitude == nil && p.Longitude == nil && p.Phone == nil && p.WhatsApp == nil &&
		p.Email == nil && p.CustomFields == nil && p.ExpiresAt == nil &&
		!p.ClearPrice && !p.ClearSubcategory && !p.ClearCoordinates && !p.ClearExpiresAt
}
