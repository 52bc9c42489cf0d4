package repositories

import (
	"bistro/internal/listing"
	"bistro/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}

// MenuItemRepository defines the interface for menu item data access.
type MenuItemRepository interface {
	List(params listing.Params) ([]models.MenuItem, error)
	GetByID(id string) (*models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id string) error
}
