package models

import "gorm.io/gorm"

// OrderStatus is the delivery status of an order. The ranking makes the
// enum extensible (e.g. "Out for delivery" between the two) while
// keeping transitions forward-only.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusDelivered OrderStatus = "Delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusDelivered: 1,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Writing the current status again is allowed; moving backwards
// is not.
func CanTransition(from, to OrderStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// Order is a durable record created from a cart. DeliveryCrewID is nil
// until a manager assigns a crew member.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string      `json:"user_id" gorm:"type:varchar(36);index"`
	DeliveryCrewID *string     `json:"delivery_crew_id" gorm:"type:varchar(36);index"`
	Status         OrderStatus `json:"status" gorm:"type:varchar(30)"`
	Total          float64     `json:"total"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem is a frozen line-item snapshot taken from a cart line at
// order creation. It is never mutated afterwards.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"type:varchar(36);index"`
	UserID     string  `json:"user_id" gorm:"type:varchar(36)"`
	MenuItemID string  `json:"menuitem_id" gorm:"type:varchar(36)"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Price      float64 `json:"price"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
