package http

import (
	"errors"
	"net/http"
	"strconv"

	"classifieds/pkg/jwt"
	"classifieds/pkg/logger"
	"classifieds/pkg/middleware"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listings   usecase.ListingUseCase
	images     usecase.ImageUseCase
	categories usecase.CategoryUseCase
	search     usecase.SearchUseCase
	lifecycle  usecase.LifecycleUseCase
	engagement usecase.EngagementUseCase
	logger     *logger.Logger
}

func NewListingHandler(
	listings usecase.ListingUseCase,
	images usecase.ImageUseCase,
	categories usecase.CategoryUseCase,
	search usecase.SearchUseCase,
	lifecycle usecase.LifecycleUseCase,
	engagement usecase.EngagementUseCase,
	logger *logger.Logger,
) *ListingHandler {
	return &ListingHandler{
		listings:   listings,
		images:     images,
		categories: categories,
		search:     search,
		lifecycle:  lifecycle,
		engagement: engagement,
		logger:     logger,
	}
}

// respondError maps use case errors onto HTTP statuses.
func (h *ListingHandler) respondError(c *gin.Context, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, entity.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	case errors.Is(err, entity.ErrStorageTimeout):
		h.logger.Warn("Storage timeout on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage timed out, try again"})
	default:
		h.logger.Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func isModerator(c *gin.Context) bool {
	return c.GetString(middleware.ContextRole) == jwt.RoleModerator
}

// authorizedListing loads the listing and checks that the caller owns it or
// is a moderator. Foreign listings look exactly like missing ones.
func (h *ListingHandler) authorizedListing(c *gin.Context) (*entity.Listing, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if listing.UserID != c.GetString(middleware.ContextUserID) && !isModerator(c) {
		notFound(c)
		return nil, false
	}
	return listing, true
}
