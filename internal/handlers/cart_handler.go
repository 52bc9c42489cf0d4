package handlers

import (
	"bistro/internal/middleware"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart")
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleCreateCart)
	cart.Delete("/", h.HandleClearCart)
}

// CartLineRequest is one requested line of a new cart.
type CartLineRequest struct {
	MenuItemID string `json:"menuitem_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// CartRequest is the body of a cart creation request.
type CartRequest struct {
	Items []CartLineRequest `json:"items" validate:"required,min=1,dive"`
}

// HandleGetCart retrieves the caller's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(middleware.CallerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleCreateCart creates the caller's cart from the requested lines.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	var req CartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	lines := make([]services.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.CartLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	cart, err := h.service.Create(middleware.CallerFrom(c), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleClearCart deletes the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(middleware.CallerFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
