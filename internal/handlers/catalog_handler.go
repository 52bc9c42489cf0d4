package handlers

import (
	"bistro/internal/listing"
	"bistro/internal/middleware"
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for categories and menu items.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.HandleCreateCategory)
	categories.Get("/:id", h.HandleGetCategory)
	categories.Put("/:id", h.HandleUpdateCategory)
	categories.Patch("/:id", h.HandlePatchCategory)
	categories.Delete("/:id", h.HandleDeleteCategory)

	items := router.Group("/menu-items")
	items.Get("/", h.HandleListMenuItems)
	items.Post("/", h.HandleCreateMenuItem)
	items.Get("/:id", h.HandleGetMenuItem)
	items.Put("/:id", h.HandleUpdateMenuItem)
	items.Patch("/:id", h.HandlePatchMenuItem)
	items.Delete("/:id", h.HandleDeleteMenuItem)
}

// CategoryRequest is the body of category create and full-update requests.
type CategoryRequest struct {
	Title string `json:"title" validate:"required,min=2,max=100"`
}

// CategoryPatchRequest is the body of partial category updates.
type CategoryPatchRequest struct {
	Title *string `json:"title" validate:"omitempty,min=2,max=100"`
}

// MenuItemRequest is the body of menu item create and full-update requests.
type MenuItemRequest struct {
	Title      string  `json:"title" validate:"required,min=2,max=100"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	CategoryID string  `json:"category_id" validate:"required,uuid"`
}

// MenuItemPatchRequest is the body of partial menu item updates.
type MenuItemPatchRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=2,max=100"`
	Price      *float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID *string  `json:"category_id" validate:"omitempty,uuid"`
}

// HandleListCategories retrieves all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a new category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category := &models.Category{Title: req.Title}
	if err := h.service.CreateCategory(middleware.CallerFrom(c), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleGetCategory retrieves a single category by its ID.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleUpdateCategory replaces a category.
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.service.UpdateCategory(middleware.CallerFrom(c), c.Params("id"), req.Title)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(category)
}

// HandlePatchCategory applies a partial update to a category.
func (h *CatalogHandler) HandlePatchCategory(c *fiber.Ctx) error {
	var req CategoryPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.service.PatchCategory(middleware.CallerFrom(c), c.Params("id"), services.CategoryUpdate{
		Title: req.Title,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(category)
}

// HandleDeleteCategory deletes a category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(middleware.CallerFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListMenuItems retrieves menu items narrowed by the query
// parameters: category, to_price, search, ordering, page, perpage.
func (h *CatalogHandler) HandleListMenuItems(c *fiber.Ctx) error {
	items, err := h.service.ListMenuItems(listing.Parse(c.Query))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleCreateMenuItem creates a new menu item.
func (h *CatalogHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var req MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	item := &models.MenuItem{
		Title:      req.Title,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	}
	if err := h.service.CreateMenuItem(middleware.CallerFrom(c), item); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetMenuItem retrieves a single menu item by its ID.
func (h *CatalogHandler) HandleGetMenuItem(c *fiber.Ctx) error {
	item, err := h.service.GetMenuItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleUpdateMenuItem replaces a menu item.
func (h *CatalogHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var req MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	item, err := h.service.UpdateMenuItem(middleware.CallerFrom(c), c.Params("id"), req.Title, req.Price, req.CategoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(item)
}

// HandlePatchMenuItem applies a partial update to a menu item.
func (h *CatalogHandler) HandlePatchMenuItem(c *fiber.Ctx) error {
	var req MenuItemPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	item, err := h.service.PatchMenuItem(middleware.CallerFrom(c), c.Params("id"), services.MenuItemUpdate{
		Title:      req.Title,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(item)
}

// HandleDeleteMenuItem deletes a menu item.
func (h *CatalogHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	if err := h.service.DeleteMenuItem(middleware.CallerFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
