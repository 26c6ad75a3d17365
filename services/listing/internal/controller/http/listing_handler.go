package http

import (
	"net/http"
	"strconv"
	"time"

	"classifieds/pkg/middleware"
	"classifieds/services/listing/internal/entity"

	"github.com/gin-gonic/gin"
)

type CreateListingRequest struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	CategoryID    uint                `json:"category_id" binding:"required"`
	SubcategoryID *uint               `json:"subcategory_id"`
	Condition     entity.Condition    `json:"condition"`
	Price         *float64            `json:"price"`
	PriceType     entity.PriceType    `json:"price_type"`
	Currency      string              `json:"currency"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	Country       string              `json:"country"`
	PostalCode    string              `json:"postal_code"`
	Latitude      *float64            `json:"latitude"`
	Longitude     *float64            `json:"longitude"`
	Phone         string              `json:"phone"`
	WhatsApp      string              `json:"whatsapp"`
	Email         string              `json:"email"`
	CustomFields  entity.CustomFields `json:"custom_fields"`
}

type UpdateListingRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	CategoryID    *uint               `json:"category_id"`
	SubcategoryID *uint               `json:"subcategory_id"`
	Condition     *entity.Condition   `json:"condition"`
	Price         *float64            `json:"price"`
	PriceType     *entity.PriceType   `json:"price_type"`
	Currency      *string             `json:"currency"`
	City          *string             `json:"city"`
	State         *string             `json:"state"`
	Country       *string             `json:"country"`
	PostalCode    *string             `json:"postal_code"`
	Latitude      *float64            `json:"latitude"`
	Longitude     *float64            `json:"longitude"`
	Phone         *string             `json:"phone"`
	WhatsApp      *string             `json:"whatsapp"`
	Email         *string             `json:"email"`
	CustomFields  entity.CustomFields `json:"custom_fields"`

	ClearPrice       bool `json:"clear_price"`
	ClearSubcategory bool `json:"clear_subcategory"`
	ClearCoordinates bool `json:"clear_coordinates"`
}

// CreateListing godoc
// @Summary      Create a listing
// @Description  Submit a new listing. It starts in pending status until a moderator approves it.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        listing body CreateListingRequest true "Listing fields"
// @Success      201  {object}  entity.Listing
// @Failure      400  {object}  map[string]string
// @Router       /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), entity.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Condition:     req.Condition,
		Price:         req.Price,
		PriceType:     req.PriceType,
		Currency:      req.Currency,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		UserID:        c.GetString(middleware.ContextUserID),
		CustomFields:  req.CustomFields,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetListing godoc
// @Summary      Get listing by ID
// @Description  Listing detail. Counts one view per viewer per day.
// @Tags         listings
// @Produce      json
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondDetail(c, listing)
}

// GetListingBySlug godoc
// @Summary      Get listing by slug
// @Tags         listings
// @Produce      json
// @Param        slug path string true "Listing slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /listings/slug/{slug} [get]
func (h *ListingHandler) GetListingBySlug(c *gin.Context) {
	listing, err := h.listings.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondDetail(c, listing)
}

func (h *ListingHandler) respondDetail(c *gin.Context, listing *entity.Listing) {
	ctx := c.Request.Context()
	userID := c.GetString(middleware.ContextUserID)

	if listing.Status != entity.StatusPublished && listing.UserID != userID && !isModerator(c) {
		notFound(c)
		return
	}

	if listing.Status == entity.StatusPublished && listing.UserID != userID {
		if _, err := h.engagement.RecordView(ctx, listing.ID, userID, c.ClientIP()); err != nil {
			h.logger.Warn("Failed to record view on listing %d: %v", listing.ID, err)
		}
	}

	favorites, err := h.engagement.FavoriteCount(ctx, listing.ID)
	if err != nil {
		h.logger.Warn("Failed to count favorites for listing %d: %v", listing.ID, err)
	}
	isFavorite, err := h.engagement.IsFavorite(ctx, listing.ID, userID)
	if err != nil {
		h.logger.Warn("Failed to check favorite for listing %d: %v", listing.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"listing":         listing,
		"favorites_count": favorites,
		"is_favorite":     isFavorite,
	})
}

// UpdateListing godoc
// @Summary      Update a listing
// @Description  Partial update; only supplied fields change. custom_fields replaces the whole map.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        listing body UpdateListingRequest true "Fields to change"
// @Success      200  {object}  entity.Listing
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.listings.Update(c.Request.Context(), listing.ID, entity.ListingPatch{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Condition:     req.Condition,
		Price:         req.Price,
		PriceType:     req.PriceType,
		Currency:      req.Currency,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		CustomFields:  req.CustomFields,

		ClearPrice:       req.ClearPrice,
		ClearSubcategory: req.ClearSubcategory,
		ClearCoordinates: req.ClearCoordinates,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !updated {
		notFound(c)
		return
	}

	fresh, err := h.listings.Get(c.Request.Context(), listing.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// DeleteListing godoc
// @Summary      Delete a listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}

	deleted, err := h.listings.Delete(c.Request.Context(), listing.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchListings godoc
// @Summary      Search published listings
// @Tags         listings
// @Produce      json
// @Param        q query string false "Text in title or description"
// @Param        category_id query int false "Category"
// @Param        subcategory_id query int false "Subcategory"
// @Param        city query string false "City"
// @Param        state query string false "State"
// @Param        country query string false "Country"
// @Param        condition query string false "Condition" Enums(new, used, refurbished)
// @Param        price_min query number false "Minimum price"
// @Param        price_max query number false "Maximum price"
// @Param        user_id query string false "Owner"
// @Param        featured query bool false "Featured only"
// @Param        sort query string false "Sort key" Enums(newest, oldest, price_asc, price_desc, views)
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  entity.SearchResult
// @Failure      400  {object}  map[string]string
// @Router       /listings [get]
func (h *ListingHandler) SearchListings(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.search.Search(c.Request.Context(), filter, queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseFilter(c *gin.Context) (entity.SearchFilter, error) {
	filter := entity.SearchFilter{
		Query:   c.Query("q"),
		City:    c.Query("city"),
		State:   c.Query("state"),
		Country: c.Query("country"),
		UserID:  c.Query("user_id"),
		Sort:    entity.SortKey(c.Query("sort")),
	}

	var err error
	if filter.CategoryID, err = optionalUint(c, "category_id"); err != nil {
		return filter, err
	}
	if filter.SubcategoryID, err = optionalUint(c, "subcategory_id"); err != nil {
		return filter, err
	}
	if filter.PriceMin, err = optionalFloat(c, "price_min"); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = optionalFloat(c, "price_max"); err != nil {
		return filter, err
	}
	if v := c.Query("condition"); v != "" {
		cond := entity.Condition(v)
		filter.Condition = &cond
	}
	if v := c.Query("featured"); v != "" {
		featured, perr := strconv.ParseBool(v)
		if perr != nil {
			return filter, entity.NewValidationError("featured", "must be a boolean")
		}
		filter.FeaturedOnly = featured
	}
	return filter, nil
}

func optionalUint(c *gin.Context, name string) (*uint, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, entity.NewValidationError(name, "must be a positive integer")
	}
	u := uint(n)
	return &u, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, entity.NewValidationError(name, "must be a number")
	}
	return &f, nil
}

// NearbyListings godoc
// @Summary      Listings near a point
// @Description  Published listings within radius_km of (lat, lng), featured first then nearest.
// @Tags         listings
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Param        radius_km query number false "Radius in km (default 25)"
// @Param        limit query int false "Max results"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /listings/nearby [get]
func (h *ListingHandler) NearbyListings(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat is required"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng is required"})
		return
	}
	radius := 25.0
	if v := c.Query("radius_km"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be a number"})
			return
		}
	}

	listings, err := h.search.Nearby(c.Request.Context(), lat, lng, radius, queryInt(c, "limit", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings)})
}

// MyListings godoc
// @Summary      Caller's own listings
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /me/listings [get]
func (h *ListingHandler) MyListings(c *gin.Context) {
	var status *entity.Status
	if v := c.Query("status"); v != "" {
		s := entity.Status(v)
		status = &s
	}

	listings, total, err := h.listings.ListByOwner(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		status,
		queryInt(c, "limit", 0),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings, "total": total})
}

// PendingListings godoc
// @Summary      Moderation queue
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /moderation/pending [get]
func (h *ListingHandler) PendingListings(c *gin.Context) {
	listings, total, err := h.listings.ListPending(c.Request.Context(), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings, "total": total})
}

func parseUntil(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, entity.NewValidationError("until", "must be an RFC3339 timestamp")
	}
	return &t, nil
}
