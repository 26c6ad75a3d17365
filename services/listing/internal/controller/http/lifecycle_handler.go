package http

import (
	"net/http"

	"classifieds/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type FeatureRequest struct {
	Featured bool   `json:"featured"`
	Until    string `json:"until"`
}

type RenewRequest struct {
	Days int `json:"days"`
}

func (h *ListingHandler) respondTransition(c *gin.Context, changed bool, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !changed {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ApproveListing godoc
// @Summary      Approve a pending listing
// @Tags         moderation
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /moderation/{id}/approve [post]
func (h *ListingHandler) ApproveListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	changed, err := h.lifecycle.Approve(c.Request.Context(), id)
	h.respondTransition(c, changed, err)
}

// RejectListing godoc
// @Summary      Reject a pending listing
// @Tags         moderation
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        body body RejectRequest true "Reason"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /moderation/{id}/reject [post]
func (h *ListingHandler) RejectListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	changed, err := h.lifecycle.Reject(c.Request.Context(), id, req.Reason)
	h.respondTransition(c, changed, err)
}

// FeatureListing godoc
// @Summary      Toggle featured placement
// @Tags         moderation
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        body body FeatureRequest true "Featured flag and optional RFC3339 end"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /moderation/{id}/feature [post]
func (h *ListingHandler) FeatureListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	until, err := parseUntil(req.Until)
	if err != nil {
		h.respondError(c, err)
		return
	}
	changed, err := h.lifecycle.SetFeatured(c.Request.Context(), id, req.Featured, until)
	h.respondTransition(c, changed, err)
}

// MarkSold godoc
// @Summary      Mark own listing as sold
// @Tags         listings
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/sold [post]
func (h *ListingHandler) MarkSold(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	changed, err := h.lifecycle.MarkAsSold(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	h.respondTransition(c, changed, err)
}

// PauseListing godoc
// @Summary      Pause own listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/pause [post]
func (h *ListingHandler) PauseListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	changed, err := h.lifecycle.Pause(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	h.respondTransition(c, changed, err)
}

// ResumeListing godoc
// @Summary      Resume own paused listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/resume [post]
func (h *ListingHandler) ResumeListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	changed, err := h.lifecycle.Resume(c.Request.Context(), id, c.GetString(middleware.ContextUserID))
	h.respondTransition(c, changed, err)
}

// RenewListing godoc
// @Summary      Renew a listing
// @Description  Extends a published or expired listing by days from now (default 30).
// @Tags         listings
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        body body RenewRequest false "Days"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/renew [post]
func (h *ListingHandler) RenewListing(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}
	req, ok := bindRenew(c)
	if !ok {
		return
	}
	changed, err := h.lifecycle.RenewOwned(c.Request.Context(), listing.ID, listing.UserID, req.Days)
	h.respondTransition(c, changed, err)
}

// ForceRenewListing godoc
// @Summary      Republish a listing from any state
// @Tags         moderation
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        body body RenewRequest false "Days"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /moderation/{id}/renew [post]
func (h *ListingHandler) ForceRenewListing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindRenew(c)
	if !ok {
		return
	}
	changed, err := h.lifecycle.Renew(c.Request.Context(), id, req.Days)
	h.respondTransition(c, changed, err)
}

func bindRenew(c *gin.Context) (RenewRequest, bool) {
	req := RenewRequest{Days: 30}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return req, false
		}
	}
	return req, true
}
