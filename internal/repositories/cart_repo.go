package repositories

import "bistro/internal/models"

// CartRepository defines the interface for cart data access. Carts are
// ephemeral, so deletes are hard deletes: a cleared cart must not block
// a new one through the unique index on user_id.
type CartRepository interface {
	GetByUser(userID string) (*models.Cart, error)
	ExistsForUser(userID string) (bool, error)
	Create(cart *models.Cart) error
	DeleteByUser(userID string) error
}
