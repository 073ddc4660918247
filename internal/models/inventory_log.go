package models

import "time"

// InventoryLog is an append-only audit record of one stock transition.
// Rows are never updated or deleted directly; they only disappear when
// their product is deleted (cascade).
type InventoryLog struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"index;not null" json:"productId"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	OldStock int `gorm:"not null" json:"oldStock"`
	NewStock int `gorm:"not null" json:"newStock"`

	// Who made the change (email from the auth layer, "system" otherwise).
	ChangedBy string `gorm:"size:100;not null;default:system" json:"changedBy"`

	CreatedAt time.Time `json:"timestamp"`
}
