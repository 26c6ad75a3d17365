package http

import (
	"net/http"
	"strconv"

	"classifieds/services/listing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AddImageRequest struct {
	URL       string `json:"url" binding:"required"`
	SortOrder int    `json:"sort_order"`
	IsPrimary bool   `json:"is_primary"`
}

// GetImages godoc
// @Summary      List listing images
// @Description  Primary image first, then by sort order.
// @Tags         images
// @Produce      json
// @Param        id path int true "Listing ID"
// @Success      200  {array}   entity.ListingImage
// @Router       /listings/{id}/images [get]
func (h *ListingHandler) GetImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.images.GetImages(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// AddImage godoc
// @Summary      Attach an image
// @Description  Accepts either a JSON body with a url, or a multipart upload in the "file" field.
// @Tags         images
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        file formData file false "Image file"
// @Param        sort_order formData int false "Sort order"
// @Param        is_primary formData bool false "Make primary"
// @Success      201  {object}  entity.ListingImage
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/images [post]
func (h *ListingHandler) AddImage(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
			return
		}
		defer file.Close()

		order, _ := strconv.Atoi(c.PostForm("sort_order"))
		primary, _ := strconv.ParseBool(c.PostForm("is_primary"))

		image, err := h.images.UploadImage(c.Request.Context(), listing.ID, usecase.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
			SortOrder:   order,
			IsPrimary:   primary,
		})
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, image)
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := h.images.AddImage(c.Request.Context(), listing.ID, req.URL, req.SortOrder, req.IsPrimary)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// SetPrimaryImage godoc
// @Summary      Make an image primary
// @Tags         images
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        image_id path int true "Image ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/images/{image_id}/primary [put]
func (h *ListingHandler) SetPrimaryImage(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}
	imageID, ok := parseID(c, "image_id")
	if !ok {
		return
	}

	updated, err := h.images.SetPrimary(c.Request.Context(), listing.ID, imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !updated {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteImage godoc
// @Summary      Remove an image
// @Tags         images
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        image_id path int true "Image ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/images/{image_id} [delete]
func (h *ListingHandler) DeleteImage(c *gin.Context) {
	listing, ok := h.authorizedListing(c)
	if !ok {
		return
	}
	imageID, ok := parseID(c, "image_id")
	if !ok {
		return
	}

	owned := false
	for _, img := range listing.Images {
		if img.ID == imageID {
			owned = true
			break
		}
	}
	if !owned {
		notFound(c)
		return
	}

	deleted, err := h.images.DeleteImage(c.Request.Context(), imageID)
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
