package services

import (
	"bistro/internal/apperr"
	"bistro/internal/auth"
	"bistro/internal/models"
	"bistro/internal/repositories"
)

// CartService handles business logic for the single-active-cart-per-user
// invariant. Every operation is scoped to the caller's own cart; no
// staff role grants access to someone else's.
type CartService struct {
	cartRepo     repositories.CartRepository
	menuItemRepo repositories.MenuItemRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, menuItemRepo repositories.MenuItemRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		menuItemRepo: menuItemRepo,
	}
}

// CartLine is one requested line of a new cart.
type CartLine struct {
	MenuItemID string
	Quantity   int
}

// Get returns the caller's cart.
func (s *CartService) Get(caller auth.Caller) (*models.Cart, error) {
	return s.cartRepo.GetByUser(caller.UserID)
}

// Create builds the caller's cart from the requested lines, snapshotting
// each menu item's current price. Fails with Conflict if the caller
// already owns a cart, regardless of the payload.
func (s *CartService) Create(caller auth.Caller, lines []CartLine) (*models.Cart, error) {
	exists, err := s.cartRepo.ExistsForUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("the user has already a cart")
	}
	if len(lines) == 0 {
		return nil, apperr.Validationf("at least one cart line is required")
	}

	cart := &models.Cart{UserID: caller.UserID}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validationf("quantity must be positive")
		}
		item, err := s.menuItemRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		price := float64(line.Quantity) * item.Price
		cart.Items = append(cart.Items, models.CartItem{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price, // snapshot; later menu price changes never touch this line
			Price:      price,
		})
		cart.Total += price
	}

	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the caller's cart.
func (s *CartService) Clear(caller auth.Caller) error {
	return s.cartRepo.DeleteByUser(caller.UserID)
}
