package repositories

import (
	"bistro/internal/listing"
	"bistro/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	List(params listing.Params) ([]models.Order, error)
	ListByDeliveryCrew(crewID string) ([]models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)

	// CreateFromCart persists the order with its line items and deletes
	// the source cart in one transaction. The cart is only removed after
	// both writes succeed; any failure rolls the whole sequence back.
	CreateFromCart(order *models.Order, cartID string) error

	Update(order *models.Order) error
	Delete(id string) error
}
