package models

import "gorm.io/gorm"

// Category groups menu items. Only managers may create or change
// categories.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title      string `json:"title" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
