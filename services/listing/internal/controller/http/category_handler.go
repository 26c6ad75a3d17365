package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

type SetParentRequest struct {
	ParentID *uint `json:"parent_id"`
}

// ListCategories godoc
// @Summary      Flat category list
// @Tags         categories
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /categories [get]
func (h *ListingHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetFlat(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CategoryTree godoc
// @Summary      Nested category tree
// @Tags         categories
// @Produce      json
// @Success      200  {array}  entity.CategoryNode
// @Router       /categories/tree [get]
func (h *ListingHandler) CategoryTree(c *gin.Context) {
	tree, err := h.categories.GetTree(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body CreateCategoryRequest true "Category"
// @Success      201  {object}  entity.Category
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories [post]
func (h *ListingHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name, req.ParentID, req.SortOrder)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// SetCategoryParent godoc
// @Summary      Move a category
// @Description  Rejects moves that would make a category its own ancestor.
// @Tags         categories
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Category ID"
// @Param        body body SetParentRequest true "New parent, null for top level"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id}/parent [put]
func (h *ListingHandler) SetCategoryParent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SetParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.categories.SetParent(c.Request.Context(), id, req.ParentID)
	h.respondTransition(c, changed, err)
}
