package services

import (
	"errors"
	"strings"

	"menuboard-api/models"
	"menuboard-api/notify"

	"gorm.io/gorm"
)

// MenuService owns all validated mutation of restaurant menu items. It is
// constructed once with its store and notifier injected and shared by
// reference across handlers.
type MenuService struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewMenuService(db *gorm.DB, hub *notify.Hub) *MenuService {
	return &MenuService{db: db, hub: hub}
}

// CreateItemInput is the payload for a new menu item. Description is the
// only required field; everything else is default-filled.
type CreateItemInput struct {
	RestaurantID   uint              `json:"restaurant_id" binding:"required"`
	Name           string            `json:"name"`
	OriginalName   string            `json:"original_name"`
	Description    string            `json:"description"`
	Price          string            `json:"price"`
	Image          string            `json:"image"`
	ImageID        *uint             `json:"image_id"`
	CourseTags     []string          `json:"course_tags"`
	OriginalCourse string            `json:"original_course"`
	DisplayOrder   int               `json:"display_order"`
	Status         models.MenuStatus `json:"status"`
	Allergens      models.Allergens  `json:"allergens"`
	Dietary        models.Dietary    `json:"dietary"`
}

// ItemPatch is an explicit partial update: nil fields preserve the existing
// value, set fields override it.
type ItemPatch struct {
	Name           *string            `json:"name"`
	OriginalName   *string            `json:"original_name"`
	Description    *string            `json:"description"`
	Price          *string            `json:"price"`
	Image          *string            `json:"image"`
	ImageID        *uint              `json:"image_id"`
	CourseTags     *[]string          `json:"course_tags"`
	OriginalCourse *string            `json:"original_course"`
	DisplayOrder   *int               `json:"display_order"`
	Status         *models.MenuStatus `json:"status"`
	Allergens      *models.Allergens  `json:"allergens"`
	Dietary        *models.Dietary    `json:"dietary"`
}

// NormalizeTags trims course tags, drops empties, and removes byte-identical
// duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ownsRestaurant reports whether the restaurant exists and belongs to the
// user. Missing and not-owned are indistinguishable on purpose.
func (s *MenuService) ownsRestaurant(restaurantID, userID uint) bool {
	var count int64
	s.db.Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, userID).
		Count(&count)
	return count > 0
}

// Create validates and persists a new menu item for a restaurant owned by
// the acting user, then notifies that restaurant's subscribers.
func (s *MenuService) Create(input CreateItemInput, actingUser uint) (*models.MenuItem, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, invalid("description", "must not be empty")
	}
	if input.Status == "" {
		input.Status = models.StatusDraft
	}
	if !ValidStatus(input.Status) {
		return nil, invalid("status", "must be 'draft' or 'live'")
	}
	if !s.ownsRestaurant(input.RestaurantID, actingUser) {
		return nil, ErrNotOwner
	}

	item := models.MenuItem{
		RestaurantID:   input.RestaurantID,
		Name:           input.Name,
		OriginalName:   input.OriginalName,
		Description:    input.Description,
		Price:          input.Price,
		Image:          input.Image,
		ImageID:        input.ImageID,
		CourseTags:     NormalizeTags(input.CourseTags),
		OriginalCourse: input.OriginalCourse,
		DisplayOrder:   input.DisplayOrder,
		Status:         input.Status,
		Allergens:      input.Allergens,
		Dietary:        input.Dietary,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(item.RestaurantID, notify.UpdateEvent)
	return &item, nil
}

// get fetches an item and enforces that the acting user owns its restaurant.
func (s *MenuService) get(id, actingUser uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.ownsRestaurant(item.RestaurantID, actingUser) {
		return nil, ErrNotOwner
	}
	return &item, nil
}

// Update merges the patch over the existing item. Omitted fields are
// preserved; provided course tags are re-normalized.
func (s *MenuService) Update(id uint, patch ItemPatch, actingUser uint) (*models.MenuItem, error) {
	item, err := s.get(id, actingUser)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, invalid("description", "must not be empty")
		}
		item.Description = *patch.Description
	}
	if patch.Status != nil {
		if err := CanTransition(item.Status, *patch.Status); err != nil {
			return nil, err
		}
		item.Status = *patch.Status
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.OriginalName != nil {
		item.OriginalName = *patch.OriginalName
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.ImageID != nil {
		item.ImageID = patch.ImageID
	}
	if patch.CourseTags != nil {
		item.CourseTags = NormalizeTags(*patch.CourseTags)
	}
	if patch.OriginalCourse != nil {
		item.OriginalCourse = *patch.OriginalCourse
	}
	if patch.DisplayOrder != nil {
		item.DisplayOrder = *patch.DisplayOrder
	}
	if patch.Allergens != nil {
		item.Allergens = *patch.Allergens
	}
	if patch.Dietary != nil {
		item.Dietary = *patch.Dietary
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(item.RestaurantID, notify.UpdateEvent)
	return item, nil
}

// UpdateStatus toggles an item between draft and live.
func (s *MenuService) UpdateStatus(id uint, status models.MenuStatus, actingUser uint) (*models.MenuItem, error) {
	if !ValidStatus(status) {
		return nil, invalid("status", "must be 'draft' or 'live'")
	}
	item, err := s.get(id, actingUser)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(item.Status, status); err != nil {
		return nil, err
	}
	item.Status = status
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(item.RestaurantID, notify.UpdateEvent)
	return item, nil
}

// Delete removes a single item after the ownership check.
func (s *MenuService) Delete(id, actingUser uint) error {
	item, err := s.get(id, actingUser)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return err
	}
	s.hub.Publish(item.RestaurantID, notify.UpdateEvent)
	return nil
}

// BulkDeleteResult tallies a best-effort bulk delete. Successful deletions
// are never rolled back when others fail.
type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// DeleteMany deletes each id independently, counting failures. One
// notification is published per affected restaurant, after the batch.
func (s *MenuService) DeleteMany(ids []uint, actingUser uint) BulkDeleteResult {
	var res BulkDeleteResult
	touched := make(map[uint]bool)
	for _, id := range ids {
		item, err := s.get(id, actingUser)
		if err != nil {
			res.Failed++
			continue
		}
		if err := s.db.Delete(item).Error; err != nil {
			res.Failed++
			continue
		}
		res.Deleted++
		touched[item.RestaurantID] = true
	}
	for rid := range touched {
		s.hub.Publish(rid, notify.UpdateEvent)
	}
	return res
}

// List returns a restaurant's items, optionally filtered by status, ordered
// by display order then id. No ownership check: the public path layers its
// own live-only constraint on top.
func (s *MenuService) List(restaurantID uint, status *models.MenuStatus) ([]models.MenuItem, error) {
	query := s.db.Where("restaurant_id = ?", restaurantID)
	if status != nil {
		if !ValidStatus(*status) {
			return nil, invalid("status", "must be 'draft' or 'live'")
		}
		query = query.Where("status = ?", *status)
	}
	var items []models.MenuItem
	if err := query.Order("display_order asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
