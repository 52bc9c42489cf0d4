package handlers

import (
	"bistro/internal/listing"
	"bistro/internal/middleware"
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Put("/:id", h.HandleReplaceOrder)
	orders.Patch("/:id", h.HandlePatchOrder)
	orders.Delete("/:id", h.HandleDeleteOrder)
}

// OrderPutRequest is the body of a full order update. Only managers may
// use it; a missing delivery_crew_id unassigns the crew member.
type OrderPutRequest struct {
	DeliveryCrewID *string            `json:"delivery_crew_id" validate:"omitempty,uuid"`
	Status         models.OrderStatus `json:"status" validate:"required"`
}

// OrderPatchRequest is the body of a partial order update.
type OrderPatchRequest struct {
	DeliveryCrewID *string             `json:"delivery_crew_id" validate:"omitempty,uuid"`
	Status         *models.OrderStatus `json:"status"`
}

// HandleListOrders lists the orders visible to the caller. Managers may
// narrow the result with to_price, search, ordering, page and perpage.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(middleware.CallerFrom(c), listing.Parse(c.Query))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleCreateOrder converts the caller's cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	order, err := h.service.Create(middleware.CallerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrderByID retrieves a single order; owner only.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.Get(middleware.CallerFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleReplaceOrder replaces the mutable fields of an order.
func (h *OrderHandler) HandleReplaceOrder(c *fiber.Ctx) error {
	var req OrderPutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.service.Replace(middleware.CallerFrom(c), c.Params("id"), req.DeliveryCrewID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(order)
}

// HandlePatchOrder applies a role-dependent partial update to an order.
func (h *OrderHandler) HandlePatchOrder(c *fiber.Ctx) error {
	var req OrderPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.service.Patch(middleware.CallerFrom(c), c.Params("id"), services.OrderUpdate{
		DeliveryCrewID: req.DeliveryCrewID,
		Status:         req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusResetContent).JSON(order)
}

// HandleDeleteOrder deletes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.CallerFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
