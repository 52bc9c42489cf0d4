package models

import "gorm.io/gorm"

// MenuItem is a purchasable dish. Cart and order lines snapshot its
// price at add time, so later price changes never touch existing carts
// or orders.
type MenuItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title      string  `json:"title" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	CategoryID string  `json:"category_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
