package handlers

import (
	"encoding/base64"
	"net/http"
	"time"

	"menuboard-api/models"
	"menuboard-api/notify"
	"menuboard-api/services"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicHandler serves the diner-facing endpoints: the filterable live menu,
// the change notification stream, and stored images.
type PublicHandler struct {
	DB   *gorm.DB
	Menu *services.MenuService
	Hub  *notify.Hub
}

// keepaliveInterval spaces out ping events so idle streams survive proxies.
const keepaliveInterval = 30 * time.Second

// GetMenu returns the live menu of a restaurant with conjunctive filters:
// ?search= substring, ?tags= repeated course tags (item must carry all),
// ?exclude= repeated allergen names (item must be free of each).
func (h *PublicHandler) GetMenu(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	filter := services.MenuFilter{
		Search:           c.Query("search"),
		Tags:             c.QueryArray("tags"),
		ExcludeAllergens: c.QueryArray("exclude"),
	}
	items, err := h.Menu.PublicMenu(restaurantID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// Events is the change notification stream for one restaurant. Each menu
// mutation pushes one {"type":"update"} event; clients react by refetching.
// Delivery is best-effort, a reconnecting client just refetches.
func (h *PublicHandler) Events(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	ch, cancel := h.Hub.Subscribe(restaurantID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", sse.ContentType)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()

	clientGone := c.Request.Context().Done()
	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()
	for {
		var ev notify.Event
		select {
		case <-clientGone:
			return
		case received, open := <-ch:
			if !open {
				return
			}
			ev = received
		case <-keepalive.C:
			ev = notify.Event{Type: "ping"}
		}
		if err := sse.Encode(c.Writer, sse.Event{Event: "message", Data: ev}); err != nil {
			return
		}
		c.Writer.Flush()
	}
}

// GetImage serves a stored image's bytes
func (h *PublicHandler) GetImage(c *gin.Context) {
	imageID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var img models.Image
	if err := h.DB.First(&img, imageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored image is corrupt"})
		return
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
