package repositories

import (
	"errors"
	"fmt"

	"bistro/internal/apperr"
	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves the user's cart with its line items.
func (r *GORMCartRepository) GetByUser(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("the cart is empty")
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// ExistsForUser reports whether the user currently owns a cart.
func (r *GORMCartRepository) ExistsForUser(userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check cart for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// Create persists a new cart with its line items. The unique index on
// user_id turns a duplicate-cart race into a Conflict.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == "" {
			cart.Items[i].ID = uuid.New().String()
		}
		cart.Items[i].CartID = cart.ID
	}
	if err := r.db.Create(cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("the user has already a cart")
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// DeleteByUser removes the user's cart and its line items.
func (r *GORMCartRepository) DeleteByUser(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("the cart is empty")
			}
			return fmt.Errorf("failed to get cart for user %s: %w", userID, err)
		}
		if err := tx.Unscoped().Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Unscoped().Delete(&cart).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}
