package handlers

import (
	"fmt"

	"bistro/internal/auth"
	"bistro/internal/middleware"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RosterHandler handles HTTP requests for the staff role rosters.
type RosterHandler struct {
	service  *services.RosterService
	validate *validator.Validate
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(service *services.RosterService) *RosterHandler {
	return &RosterHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the roster routes with the Fiber app.
func (h *RosterHandler) RegisterRoutes(router fiber.Router) {
	managers := router.Group("/roles/managers")
	managers.Get("/", h.HandleListManagers)
	managers.Post("/", h.HandleAddManager)
	managers.Delete("/:id", h.HandleRemoveManager)

	crew := router.Group("/roles/delivery-crew")
	crew.Get("/", h.HandleListDeliveryCrew)
	crew.Post("/", h.HandleAddDeliveryCrew)
	crew.Delete("/:id", h.HandleRemoveDeliveryCrew)
}

// RosterRequest is the body of a role-assignment request.
type RosterRequest struct {
	Username string `json:"username" validate:"required"`
}

// HandleListManagers lists the members of the Manager role.
func (h *RosterHandler) HandleListManagers(c *fiber.Ctx) error {
	return h.listMembers(c, auth.RoleManager)
}

// HandleAddManager adds a user to the Manager role.
func (h *RosterHandler) HandleAddManager(c *fiber.Ctx) error {
	return h.addMember(c, auth.RoleManager)
}

// HandleRemoveManager removes a user from the Manager role.
func (h *RosterHandler) HandleRemoveManager(c *fiber.Ctx) error {
	return h.removeMember(c, auth.RoleManager)
}

// HandleListDeliveryCrew lists the members of the Delivery crew role.
func (h *RosterHandler) HandleListDeliveryCrew(c *fiber.Ctx) error {
	return h.listMembers(c, auth.RoleDeliveryCrew)
}

// HandleAddDeliveryCrew adds a user to the Delivery crew role.
func (h *RosterHandler) HandleAddDeliveryCrew(c *fiber.Ctx) error {
	return h.addMember(c, auth.RoleDeliveryCrew)
}

// HandleRemoveDeliveryCrew removes a user from the Delivery crew role.
func (h *RosterHandler) HandleRemoveDeliveryCrew(c *fiber.Ctx) error {
	return h.removeMember(c, auth.RoleDeliveryCrew)
}

func (h *RosterHandler) listMembers(c *fiber.Ctx, role auth.Role) error {
	members, err := h.service.ListMembers(middleware.CallerFrom(c), role)
	if err != nil {
		return respondError(c, err)
	}
	// Never echo password hashes
	for i := range members {
		members[i].Password = ""
	}
	return c.JSON(members)
}

func (h *RosterHandler) addMember(c *fiber.Ctx, role auth.Role) error {
	var req RosterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.service.AddMember(middleware.CallerFrom(c), role, req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("User %s is added to the %s role", user.Username, role),
	})
}

func (h *RosterHandler) removeMember(c *fiber.Ctx, role auth.Role) error {
	user, err := h.service.RemoveMember(middleware.CallerFrom(c), role, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s is removed from the %s role", user.Username, role),
	})
}
