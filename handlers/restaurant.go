package handlers

import (
	"net/http"

	"menuboard-api/middleware"
	"menuboard-api/models"
	"menuboard-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MenuHandler serves the owner-facing restaurant and menu endpoints.
type MenuHandler struct {
	DB   *gorm.DB
	Menu *services.MenuService
}

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateRestaurant lets a restaurant-role user create a restaurant. A user
// may own several.
func (h *MenuHandler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{OwnerID: ownerID, Name: req.Name}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// ListMyRestaurants fetches every restaurant owned by the logged-in user
func (h *MenuHandler) ListMyRestaurants(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurants []models.Restaurant
	h.DB.Where("owner_id = ?", ownerID).Order("id asc").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// ── Menu Management ─────────────────────────────────────────────────────────

// ListMenu returns a restaurant's items for the owner dashboard, optionally
// filtered by ?status=draft|live
func (h *MenuHandler) ListMenu(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var status *models.MenuStatus
	if s := c.Query("status"); s != "" {
		ms := models.MenuStatus(s)
		status = &ms
	}
	items, err := h.Menu.List(restaurantID, status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// CreateItem adds a new menu item to one of the caller's restaurants
func (h *MenuHandler) CreateItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var input services.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Menu.Create(input, ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateItem merges a partial update over a menu item (only by the owner)
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var patch services.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Menu.Update(itemID, patch, ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

type UpdateStatusRequest struct {
	Status models.MenuStatus `json:"status" binding:"required"`
}

// UpdateItemStatus toggles a menu item between draft and live
func (h *MenuHandler) UpdateItemStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Menu.UpdateStatus(itemID, req.Status, ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "item": item})
}

// DeleteItem removes a menu item
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Menu.Delete(itemID, ownerID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BulkDelete removes items by id list, best-effort. The response reports the
// per-item tally; successes stand even when some ids fail.
func (h *MenuHandler) BulkDelete(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := h.Menu.DeleteMany(req.IDs, ownerID)
	c.JSON(http.StatusOK, gin.H{"message": "Bulk delete finished", "result": res})
}

// ── CSV Interchange ─────────────────────────────────────────────────────────

// ExportCSV downloads the restaurant's full menu as CSV
func (h *MenuHandler) ExportCSV(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.Menu.ExportCSV(restaurantID, ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="menu.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

// ImportCSV bulk-creates menu items from an uploaded CSV file. Bad rows are
// reported per row and do not abort the rest.
func (h *MenuHandler) ImportCSV(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file required in 'file' field"})
		return
	}
	defer file.Close()

	res, err := h.Menu.ImportCSV(restaurantID, file, ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Import finished", "result": res})
}
