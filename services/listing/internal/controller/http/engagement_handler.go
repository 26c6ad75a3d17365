package http

import (
	"net/http"

	"classifieds/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// AddFavorite godoc
// @Summary      Save a listing to favorites
// @Tags         favorites
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/favorite [post]
func (h *ListingHandler) AddFavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	added, err := h.engagement.AddFavorite(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !added {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": true})
}

// RemoveFavorite godoc
// @Summary      Remove a listing from favorites
// @Tags         favorites
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Router       /listings/{id}/favorite [delete]
func (h *ListingHandler) RemoveFavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	removed, err := h.engagement.RemoveFavorite(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": false, "removed": removed})
}

// MyFavorites godoc
// @Summary      Caller's favorite listings
// @Description  Only currently published listings, newest favorite first.
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results"
// @Success      200  {object}  map[string]interface{}
// @Router       /me/favorites [get]
func (h *ListingHandler) MyFavorites(c *gin.Context) {
	listings, err := h.engagement.GetUserFavorites(c.Request.Context(), c.GetString(middleware.ContextUserID), queryInt(c, "limit", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// MyStats godoc
// @Summary      Caller's listing statistics
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.AdvertStats
// @Router       /me/stats [get]
func (h *ListingHandler) MyStats(c *gin.Context) {
	stats, err := h.engagement.GetUserAdvertStats(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
