package services

import (
	"bistro/internal/apperr"
	"bistro/internal/auth"
	"bistro/internal/listing"
	"bistro/internal/models"
	"bistro/internal/repositories"
)

// CatalogService handles business logic for categories and menu items.
// Reads are open to any authenticated caller; every write requires the
// Manager role.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, menuItemRepo repositories.MenuItemRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
	}
}

// CategoryUpdate carries the fields of a partial category update. Nil
// fields are left untouched.
type CategoryUpdate struct {
	Title *string
}

// MenuItemUpdate carries the fields of a partial menu item update. Nil
// fields are left untouched.
type MenuItemUpdate struct {
	Title      *string
	Price      *float64
	CategoryID *string
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a single category by its ID.
func (s *CatalogService) GetCategory(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a new category. Manager only.
func (s *CatalogService) CreateCategory(caller auth.Caller, category *models.Category) error {
	if !caller.IsManager() {
		return apperr.Forbiddenf("only managers may create categories")
	}
	return s.categoryRepo.Create(category)
}

// UpdateCategory replaces a category. Manager only.
func (s *CatalogService) UpdateCategory(caller auth.Caller, id, title string) (*models.Category, error) {
	if !caller.IsManager() {
		return nil, apperr.Forbiddenf("only managers may update categories")
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Title = title
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// PatchCategory applies a partial update to a category. Manager only.
func (s *CatalogService) PatchCategory(caller auth.Caller, id string, upd CategoryUpdate) (*models.Category, error) {
	if !caller.IsManager() {
		return nil, apperr.Forbiddenf("only managers may update categories")
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		category.Title = *upd.Title
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category. Manager only.
func (s *CatalogService) DeleteCategory(caller auth.Caller, id string) error {
	if !caller.IsManager() {
		return apperr.Forbiddenf("only managers may delete categories")
	}
	return s.categoryRepo.Delete(id)
}

// ListMenuItems retrieves menu items narrowed by the listing parameters.
func (s *CatalogService) ListMenuItems(params listing.Params) ([]models.MenuItem, error) {
	return s.menuItemRepo.List(params)
}

// GetMenuItem retrieves a single menu item by its ID.
func (s *CatalogService) GetMenuItem(id string) (*models.MenuItem, error) {
	return s.menuItemRepo.GetByID(id)
}

// CreateMenuItem creates a new menu item. Manager only. The referenced
// category must exist.
func (s *CatalogService) CreateMenuItem(caller auth.Caller, item *models.MenuItem) error {
	if !caller.IsManager() {
		return apperr.Forbiddenf("only managers may create menu items")
	}
	if err := s.checkCategory(item.CategoryID); err != nil {
		return err
	}
	return s.menuItemRepo.Create(item)
}

// UpdateMenuItem replaces a menu item. Manager only.
func (s *CatalogService) UpdateMenuItem(caller auth.Caller, id string, title string, price float64, categoryID string) (*models.MenuItem, error) {
	if !caller.IsManager() {
		return nil, apperr.Forbiddenf("only managers may update menu items")
	}
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(categoryID); err != nil {
		return nil, err
	}
	item.Title = title
	item.Price = price
	item.CategoryID = categoryID
	if err := s.menuItemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// PatchMenuItem applies a partial update to a menu item. Manager only.
func (s *CatalogService) PatchMenuItem(caller auth.Caller, id string, upd MenuItemUpdate) (*models.MenuItem, error) {
	if !caller.IsManager() {
		return nil, apperr.Forbiddenf("only managers may update menu items")
	}
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Price != nil {
		if *upd.Price <= 0 {
			return nil, apperr.Validationf("price must be positive")
		}
		item.Price = *upd.Price
	}
	if upd.CategoryID != nil {
		if err := s.checkCategory(*upd.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *upd.CategoryID
	}
	if err := s.menuItemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item. Manager only.
func (s *CatalogService) DeleteMenuItem(caller auth.Caller, id string) error {
	if !caller.IsManager() {
		return apperr.Forbiddenf("only managers may delete menu items")
	}
	return s.menuItemRepo.Delete(id)
}

// checkCategory rejects menu item writes that point at a category that
// does not exist.
func (s *CatalogService) checkCategory(categoryID string) error {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validationf("category with ID %s does not exist", categoryID)
		}
		return err
	}
	return nil
}
