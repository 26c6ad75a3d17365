package entity

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortViews     SortKey = "views"
)

func (s SortKey) Valid() bool {
	switch s {
	case "", SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortViews:
		return true
	}
	return false
}

// SearchFilter lists every recognized search predicate. Nil or empty fields
// are not applied; all applied predicates are AND-combined.
type SearchFilter struct {
	Query         string
	CategoryID    *uint
	SubcategoryID *uint
	City          string
	State         string
	Country       string
	Condition     *Condition
	PriceMin      *float64
	PriceMax      *float64
	UserID        string
	FeaturedOnly  bool
	Sort          SortKey
}

type SearchResult struct {
	Listings []*Listing `json:"listings"`
	Total    int64      `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
