package models

import "time"

// MenuStatus represents the publication state of a menu item
type MenuStatus string

const (
	StatusDraft MenuStatus = "draft"
	StatusLive  MenuStatus = "live"
)

// Allergens holds the eight fixed allergen flags. The full key set is always
// present on every item; unspecified flags are false.
type Allergens struct {
	Milk      bool `json:"milk"`
	Eggs      bool `json:"eggs"`
	Peanuts   bool `json:"peanuts"`
	Nuts      bool `json:"nuts"`
	Shellfish bool `json:"shellfish"`
	Fish      bool `json:"fish"`
	Soy       bool `json:"soy"`
	Gluten    bool `json:"gluten"`
}

// Dietary holds the four fixed dietary-preference flags.
type Dietary struct {
	Vegan      bool `json:"vegan"`
	Vegetarian bool `json:"vegetarian"`
	Kosher     bool `json:"kosher"`
	Halal      bool `json:"halal"`
}

// AllergenNames lists the allergen keys in the order they appear on the record.
var AllergenNames = []string{"milk", "eggs", "peanuts", "nuts", "shellfish", "fish", "soy", "gluten"}

// Flag reports whether the named allergen is set. Unknown names are false.
func (a Allergens) Flag(name string) bool {
	switch name {
	case "milk":
		return a.Milk
	case "eggs":
		return a.Eggs
	case "peanuts":
		return a.Peanuts
	case "nuts":
		return a.Nuts
	case "shellfish":
		return a.Shellfish
	case "fish":
		return a.Fish
	case "soy":
		return a.Soy
	case "gluten":
		return a.Gluten
	}
	return false
}

// SetFlag sets the named allergen. Unknown names are ignored.
func (a *Allergens) SetFlag(name string, v bool) {
	switch name {
	case "milk":
		a.Milk = v
	case "eggs":
		a.Eggs = v
	case "peanuts":
		a.Peanuts = v
	case "nuts":
		a.Nuts = v
	case "shellfish":
		a.Shellfish = v
	case "fish":
		a.Fish = v
	case "soy":
		a.Soy = v
	case "gluten":
		a.Gluten = v
	}
}

// Names returns the names of all set allergen flags.
func (a Allergens) Names() []string {
	var names []string
	for _, n := range AllergenNames {
		if a.Flag(n) {
			names = append(names, n)
		}
	}
	return names
}

type MenuItem struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Name         string     `json:"name"`
	OriginalName string     `json:"original_name"`
	Description  string     `json:"description" gorm:"not null"`
	// Price is a free-form decimal-like string; empty means "not priced"
	Price string `json:"price"`
	// Image is an inline encoded image or external reference. ImageID wins
	// when both are set.
	Image          string     `json:"image"`
	ImageID        *uint      `json:"image_id"`
	CourseTags     StringList `json:"course_tags" gorm:"type:text"`
	OriginalCourse string     `json:"original_course"`
	DisplayOrder   int        `json:"display_order" gorm:"default:0"`
	Status         MenuStatus `json:"status" gorm:"not null;default:'draft'"`
	Allergens      Allergens  `json:"allergens" gorm:"embedded;embeddedPrefix:allergen_"`
	Dietary        Dietary    `json:"dietary" gorm:"embedded;embeddedPrefix:dietary_"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConsumerMenuItem is a diner's personally digitized menu item. It mirrors
// MenuItem but is owned by a user directly, with a provenance source.
type ConsumerMenuItem struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	Name           string     `json:"name"`
	OriginalName   string     `json:"original_name"`
	Description    string     `json:"description" gorm:"not null"`
	Price          string     `json:"price"`
	Image          string     `json:"image"`
	CourseTags     StringList `json:"course_tags" gorm:"type:text"`
	OriginalCourse string     `json:"original_course"`
	DisplayOrder   int        `json:"display_order" gorm:"default:0"`
	Source         string     `json:"source" gorm:"not null;default:'upload'"`
	Allergens      Allergens  `json:"allergens" gorm:"embedded;embeddedPrefix:allergen_"`
	Dietary        Dietary    `json:"dietary" gorm:"embedded;embeddedPrefix:dietary_"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
