package models

import "time"

type Restaurant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	OwnerID   uint       `json:"owner_id" gorm:"not null;index"`
	Owner     User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name      string     `json:"name" gorm:"not null"`
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
