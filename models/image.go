package models

import "time"

// Image is a stored upload for a restaurant. Data holds the encoded bytes;
// Reference is the external store URL when the upload was mirrored there.
type Image struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Filename     string    `json:"filename" gorm:"not null"`
	ContentType  string    `json:"content_type"`
	Data         string    `json:"-"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}
