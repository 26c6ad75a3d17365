package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ownedListing() *entity.Listing {
	return &entity.Listing{
		ID:     7,
		UserID: "owner",
		Images: []entity.ListingImage{{ID: 70, ListingID: 7, IsPrimary: true}, {ID: 71, ListingID: 7}},
	}
}

func TestAddImage_JSON(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.POST("/listings/:id/images", as("owner", "user", handler.AddImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)
	m.images.On("AddImage", mock.Anything, uint(7), "https://cdn.example.com/a.jpg", 1, true).
		Return(&entity.ListingImage{ID: 72, ListingID: 7, IsPrimary: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/listings/7/images",
		bytes.NewBufferString(`{"url":"https://cdn.example.com/a.jpg","sort_order":1,"is_primary":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(72), decode(t, w)["id"])
	m.assertAll(t)
}

func TestAddImage_Multipart(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.POST("/listings/:id/images", as("owner", "user", handler.AddImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)
	m.images.On("UploadImage", mock.Anything, uint(7), mock.MatchedBy(func(u usecase.ImageUpload) bool {
		return u.Filename == "bike.jpg" && u.SortOrder == 2 && u.IsPrimary && u.Body != nil
	})).Return(&entity.ListingImage{ID: 73, ListingID: 7, URL: "https://bucket/listings/7/x.jpg"}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "bike.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("fake-jpeg"))
	_ = writer.WriteField("sort_order", "2")
	_ = writer.WriteField("is_primary", "true")
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/listings/7/images", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	m.assertAll(t)
}

func TestAddImage_MissingURL(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.POST("/listings/:id/images", as("owner", "user", handler.AddImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/listings/7/images", bytes.NewBufferString(`{"sort_order":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.assertAll(t)
}

func TestGetImages(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.GET("/listings/:id/images", handler.GetImages)

	m.images.On("GetImages", mock.Anything, uint(7)).Return(ownedListing().Images, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/listings/7/images", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.assertAll(t)
}

func TestDeleteImage_OtherListingsImage(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.DELETE("/listings/:id/images/:image_id", as("owner", "user", handler.DeleteImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/listings/7/images/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	m.images.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
}

func TestDeleteImage(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.DELETE("/listings/:id/images/:image_id", as("owner", "user", handler.DeleteImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)
	m.images.On("DeleteImage", mock.Anything, uint(71)).Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/listings/7/images/71", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	m.assertAll(t)
}

func TestSetPrimaryImage(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter()
	router.PUT("/listings/:id/images/:image_id/primary", as("owner", "user", handler.SetPrimaryImage))

	m.listings.On("Get", mock.Anything, uint(7)).Return(ownedListing(), nil)
	m.images.On("SetPrimary", mock.Anything, uint(7), uint(71)).Return(true, nil)
	m.images.On("SetPrimary", mock.Anything, uint(7), uint(99)).Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/listings/7/images/71/primary", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", "/listings/7/images/99/primary", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	m.assertAll(t)
}
