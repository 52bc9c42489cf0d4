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
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories from the database.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID from the database.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("category title %q is already taken", category.Title)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update updates an existing category in the database.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("category with ID %s not found", category.ID)
	}
	return nil
}

// Delete deletes a category by its ID from the database.
func (r *GORMCategoryRepository) Delete(id string) error {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("category with ID %s not found", id)
	}
	return nil
}

// GORMMenuItemRepository is a GORM implementation of MenuItemRepository.
type GORMMenuItemRepository struct {
	db *gorm.DB
}

// NewGORMMenuItemRepository creates a new instance of GORMMenuItemRepository.
func NewGORMMenuItemRepository(db *gorm.DB) *GORMMenuItemRepository {
	return &GORMMenuItemRepository{
		db: db,
	}
}

// menuItemOrderFields are the columns a list request may sort by.
var menuItemOrderFields = map[string]bool{
	"id":          true,
	"title":       true,
	"price":       true,
	"category_id": true,
}

// List retrieves menu items narrowed by the listing parameters.
func (r *GORMMenuItemRepository) List(params listing.Params) ([]models.MenuItem, error) {
	query := r.db.Model(&models.MenuItem{})
	if params.Category != "" {
		// Subquery instead of a join keeps the ORDER BY columns unambiguous.
		sub := r.db.Model(&models.Category{}).Select("id").Where("title = ?", params.Category)
		query = query.Where("category_id IN (?)", sub)
	}
	if params.ToPrice != nil {
		query = query.Where("price <= ?", *params.ToPrice)
	}
	if params.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var items []models.MenuItem
	if err := query.Scopes(params.Scope(menuItemOrderFields)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single menu item by its ID from the database.
func (r *GORMMenuItemRepository) GetByID(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("menu item with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get menu item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create creates a new menu item in the database.
func (r *GORMMenuItemRepository) Create(item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// Update updates an existing menu item in the database.
func (r *GORMMenuItemRepository) Update(item *models.MenuItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("menu item with ID %s not found", item.ID)
	}
	return nil
}

// Delete deletes a menu item by its ID from the database.
func (r *GORMMenuItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("menu item with ID %s not found", id)
	}
	return nil
}
