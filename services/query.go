package services

import (
	"fmt"
	"strings"

	"menuboard-api/models"
)

// MenuFilter is the diner-facing filter set. All parts are applied
// conjunctively.
type MenuFilter struct {
	// Search matches case-insensitively against name OR description
	Search string
	// Tags must ALL be present on the item
	Tags []string
	// ExcludeAllergens removes items flagged with ANY of these allergens
	ExcludeAllergens []string
}

// PublicMenuItem is a menu item with its image reference resolved for
// diner-facing rendering.
type PublicMenuItem struct {
	models.MenuItem
	ImageURL string `json:"image_url,omitempty"`
}

// PublicMenu returns the live items of a restaurant, filtered and ordered
// for the diner view. It performs no writes.
func (s *MenuService) PublicMenu(restaurantID uint, f MenuFilter) ([]PublicMenuItem, error) {
	var exists int64
	s.db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&exists)
	if exists == 0 {
		return nil, ErrNotFound
	}

	live := models.StatusLive
	items, err := s.List(restaurantID, &live)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	tags := NormalizeTags(f.Tags)
	excluded := NormalizeTags(f.ExcludeAllergens)

	out := make([]PublicMenuItem, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, search) || !hasAllTags(item, tags) || hasExcludedAllergen(item, excluded) {
			continue
		}
		out = append(out, PublicMenuItem{
			MenuItem: item,
			ImageURL: s.resolveImage(item),
		})
	}
	return out, nil
}

func matchesSearch(item models.MenuItem, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), search) ||
		strings.Contains(strings.ToLower(item.Description), search)
}

func hasAllTags(item models.MenuItem, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range item.CourseTags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasExcludedAllergen(item models.MenuItem, excluded []string) bool {
	for _, name := range excluded {
		if item.Allergens.Flag(strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// resolveImage picks the authoritative image reference: the stored Image row
// when image_id is set, the inline value otherwise.
func (s *MenuService) resolveImage(item models.MenuItem) string {
	if item.ImageID != nil {
		var img models.Image
		if err := s.db.First(&img, *item.ImageID).Error; err == nil {
			if img.Reference != "" {
				return img.Reference
			}
			return fmt.Sprintf("/api/images/%d", img.ID)
		}
	}
	return item.Image
}
