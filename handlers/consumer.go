package handlers

import (
	"net/http"

	"menuboard-api/middleware"
	"menuboard-api/services"

	"github.com/gin-gonic/gin"
)

// ConsumerHandler serves a diner's personally digitized menu items.
type ConsumerHandler struct {
	Consumer *services.ConsumerService
}

// CreateItem saves an item from a menu the diner digitized themselves
func (h *ConsumerHandler) CreateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var input services.CreateConsumerItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Consumer.Create(input, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item saved", "item": item})
}

// ListItems returns the diner's saved items
func (h *ConsumerHandler) ListItems(c *gin.Context) {
	userID := middleware.GetUserID(c)
	items, err := h.Consumer.List(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// UpdateItem merges a partial update over a saved item
func (h *ConsumerHandler) UpdateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var patch services.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Consumer.Update(itemID, patch, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated", "item": item})
}

// DeleteItem removes a saved item
func (h *ConsumerHandler) DeleteItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Consumer.Delete(itemID, userID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
