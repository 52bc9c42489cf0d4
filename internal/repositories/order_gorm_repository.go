package repositories

import (
	"errors"
	"fmt"
	"strings"

	"bistro/internal/apperr"
	"bistro/internal/listing"
	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// orderOrderFields are the columns a list request may sort by.
var orderOrderFields = map[string]bool{
	"id":               true,
	"user_id":          true,
	"delivery_crew_id": true,
	"status":           true,
	"total":            true,
}

// List retrieves orders narrowed by the listing parameters.
func (r *GORMOrderRepository) List(params listing.Params) ([]models.Order, error) {
	query := r.db.Model(&models.Order{})
	if params.ToPrice != nil {
		query = query.Where("total <= ?", *params.ToPrice)
	}
	if params.Search != "" {
		query = query.Where("LOWER(status) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var orders []models.Order
	err := query.Scopes(params.Scope(orderOrderFields)).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByDeliveryCrew retrieves the orders assigned to a crew member.
func (r *GORMOrderRepository) ListByDeliveryCrew(crewID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Find(&orders, "delivery_crew_id = ?", crewID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for delivery crew %s: %w", crewID, err)
	}
	return orders, nil
}

// ListByUser retrieves the orders placed by a customer.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Find(&orders, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its line items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// CreateFromCart writes the order and its line items, then deletes the
// source cart, all inside one transaction. A missing cart aborts the
// transaction so a concurrent conversion can never produce two orders
// from the same cart.
func (r *GORMOrderRepository) CreateFromCart(order *models.Order, cartID string) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		res := tx.Unscoped().Delete(&models.Cart{}, "id = ?", cartID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("cart with ID %s not found", cartID)
		}
		return nil
	})
}

// Update persists changed order fields. Line items are frozen snapshots,
// so associations are omitted from the save.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit(clause.Associations).Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("order with ID %s not found", order.ID)
	}
	return nil
}

// Delete deletes an order by its ID.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("order with ID %s not found", id)
	}
	return nil
}
