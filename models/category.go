package models

import "gorm.io/gorm"

// Category groups tasks. Deleting a category does not cascade to its
// tasks; dependent tasks keep the dangling reference.
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `gorm:"default:'default-icon.svg'" json:"icon"`
}
