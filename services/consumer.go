package services

import (
	"errors"
	"strings"

	"menuboard-api/models"

	"gorm.io/gorm"
)

// ConsumerService manages a diner's personally digitized menu items. These
// are owned by the user directly, so the ownership check is an id compare
// rather than a restaurant lookup, and no change notifications are emitted:
// nobody subscribes to a private menu.
type ConsumerService struct {
	db *gorm.DB
}

func NewConsumerService(db *gorm.DB) *ConsumerService {
	return &ConsumerService{db: db}
}

type CreateConsumerItemInput struct {
	Name           string           `json:"name"`
	OriginalName   string           `json:"original_name"`
	Description    string           `json:"description"`
	Price          string           `json:"price"`
	Image          string           `json:"image"`
	CourseTags     []string         `json:"course_tags"`
	OriginalCourse string           `json:"original_course"`
	DisplayOrder   int              `json:"display_order"`
	Source         string           `json:"source"`
	Allergens      models.Allergens `json:"allergens"`
	Dietary        models.Dietary   `json:"dietary"`
}

func (s *ConsumerService) Create(input CreateConsumerItemInput, userID uint) (*models.ConsumerMenuItem, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, invalid("description", "must not be empty")
	}
	if input.Source == "" {
		input.Source = "upload"
	}
	item := models.ConsumerMenuItem{
		UserID:         userID,
		Name:           input.Name,
		OriginalName:   input.OriginalName,
		Description:    input.Description,
		Price:          input.Price,
		Image:          input.Image,
		CourseTags:     NormalizeTags(input.CourseTags),
		OriginalCourse: input.OriginalCourse,
		DisplayOrder:   input.DisplayOrder,
		Source:         input.Source,
		Allergens:      input.Allergens,
		Dietary:        input.Dietary,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ConsumerService) get(id, userID uint) (*models.ConsumerMenuItem, error) {
	var item models.ConsumerMenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrNotOwner
	}
	return &item, nil
}

// Update applies the same patch semantics as the restaurant lifecycle:
// nil preserves, set overrides. Status and ImageID do not apply here.
func (s *ConsumerService) Update(id uint, patch ItemPatch, userID uint) (*models.ConsumerMenuItem, error) {
	item, err := s.get(id, userID)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, invalid("description", "must not be empty")
		}
		item.Description = *patch.Description
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
	return item, nil
}

func (s *ConsumerService) Delete(id, userID uint) error {
	item, err := s.get(id, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func (s *ConsumerService) List(userID uint) ([]models.ConsumerMenuItem, error) {
	var items []models.ConsumerMenuItem
	err := s.db.Where("user_id = ?", userID).
		Order("display_order asc, id asc").
		Find(&items).Error
	return items, err
}
