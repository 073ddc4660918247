package models

import "time"

type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Unit     string  `gorm:"size:20;not null" json:"unit"` // kg, piece, box etc.
	Category string  `gorm:"size:50;not null" json:"category"`
	Brand    string  `gorm:"size:50;not null" json:"brand"`
	Status   string  `gorm:"size:20;not null" json:"status"`
	Stock    int     `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Image    *string `gorm:"size:255" json:"image"` // optional image URL

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
