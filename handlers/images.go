package handlers

import (
	"encoding/base64"
	"io"
	"net/http"

	"menuboard-api/middleware"
	"menuboard-api/models"
	"menuboard-api/pkg/logger"
	"menuboard-api/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxImageBytes caps a single upload.
const maxImageBytes = 5 << 20

// ImageHandler accepts image uploads for a restaurant, mirrors them to the
// external store when one is configured, and fires the webhook.
type ImageHandler struct {
	DB      *gorm.DB
	Store   *storage.ImageStore
	Webhook *storage.Webhook
	Log     *logger.Logger
}

// Upload stores an image for one of the caller's restaurants
func (h *ImageHandler) Upload(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("id = ? AND owner_id = ?", restaurantID, ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required in 'file' field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds the 5MB limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	requestID := middleware.GetRequestID(c)

	reference := ""
	if h.Store.Enabled() {
		reference, err = h.Store.Upload(c.Request.Context(), header.Filename, contentType, data)
		if err != nil {
			h.Log.Error(requestID, "image_upload", "external store rejected upload", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to store image"})
			return
		}
	}

	img := models.Image{
		RestaurantID: restaurantID,
		Filename:     header.Filename,
		ContentType:  contentType,
		Data:         base64.StdEncoding.EncodeToString(data),
		Reference:    reference,
	}
	if err := h.DB.Create(&img).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	h.Webhook.Notify(requestID, img.Filename, reference)

	c.JSON(http.StatusCreated, gin.H{"message": "Image stored", "image": img})
}
