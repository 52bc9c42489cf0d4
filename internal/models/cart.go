package models

import "gorm.io/gorm"

// Cart is a user's pending purchase. The unique index on UserID is the
// one-cart-per-user invariant; the row is deleted when an order is
// created from it or when the user clears it.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	Total      float64    `json:"total"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is one line of a cart. UnitPrice snapshots the menu item
// price at add time; Price = Quantity * UnitPrice.
type CartItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID     string  `json:"cart_id" gorm:"type:varchar(36);index"`
	MenuItemID string  `json:"menuitem_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price"`
	Price      float64 `json:"price"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
