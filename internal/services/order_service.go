package services

import (
	"encoding/json"
	"log"

	"bistro/internal/apperr"
	"bistro/internal/auth"
	"bistro/internal/listing"
	"bistro/internal/models"
	"bistro/internal/repositories"
	"bistro/pkg/rabbitmq"
)

// OrderService handles the order workflow: converting carts into orders,
// per-role visibility and mutation rules, and delivery-status
// transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
	}
}

// OrderUpdate carries the fields a PATCH may change. Nil fields are left
// untouched.
type OrderUpdate struct {
	DeliveryCrewID *string
	Status         *models.OrderStatus
}

// List returns the orders visible to the caller. The branch is
// role-priority ordered: a manager sees everything (narrowed by the
// listing parameters), a crew member sees the orders assigned to them,
// and anyone else sees their own orders. A user holding several roles is
// treated as the highest-priority one only.
func (s *OrderService) List(caller auth.Caller, params listing.Params) ([]models.Order, error) {
	if caller.IsManager() {
		return s.orderRepo.List(params)
	}
	if caller.IsDeliveryCrew() {
		return s.orderRepo.ListByDeliveryCrew(caller.UserID)
	}
	orders, err := s.orderRepo.ListByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.NotFoundf("no orders found for user %s", caller.Username)
	}
	return orders, nil
}

// Create converts the caller's cart into an order. The order and its
// line-item snapshots are written before the cart is deleted, all inside
// one repository transaction, so a partial failure never loses the cart
// or leaves a half-created order behind.
func (s *OrderService) Create(caller auth.Caller) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUser(caller.UserID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID: caller.UserID,
		Status: models.StatusPending,
		Total:  cart.Total,
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			UserID:     caller.UserID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Price:      line.Price,
		})
	}

	if err := s.orderRepo.CreateFromCart(order, cart.ID); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyOrderCreated, map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})

	return order, nil
}

// Get returns a single order by ID. Only the owning customer may fetch
// an order this way; managers and crew members use the list endpoint.
func (s *OrderService) Get(caller auth.Caller, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID {
		return nil, apperr.Forbiddenf("only the owner may view this order")
	}
	return order, nil
}

// Replace is the PUT path: a full replace of the mutable order fields,
// Manager only. A nil DeliveryCrewID unassigns the crew member.
func (s *OrderService) Replace(caller auth.Caller, id string, deliveryCrewID *string, status models.OrderStatus) (*models.Order, error) {
	if !caller.IsManager() {
		return nil, apperr.Forbiddenf("only managers may replace orders")
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.setStatus(order, status); err != nil {
		return nil, err
	}
	if err := s.assignCrew(order, deliveryCrewID); err != nil {
		return nil, err
	}
	return s.saveOrder(order)
}

// Patch is the PATCH path and branches by caller role. An assigned crew
// member may advance the status of their own orders; any other submitted
// field is ignored for them. A manager may partially update any field.
func (s *OrderService) Patch(caller auth.Caller, id string, upd OrderUpdate) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if caller.IsDeliveryCrew() {
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != caller.UserID {
			return nil, apperr.Forbiddenf("order %s is not assigned to this delivery crew member", id)
		}
		if upd.Status == nil {
			return nil, apperr.Validationf("status is required")
		}
		// Everything but the status is ignored for crew members.
		if err := s.setStatus(order, *upd.Status); err != nil {
			return nil, err
		}
		return s.saveOrder(order)
	}

	if caller.IsManager() {
		if upd.Status != nil {
			if err := s.setStatus(order, *upd.Status); err != nil {
				return nil, err
			}
		}
		if upd.DeliveryCrewID != nil {
			if err := s.assignCrew(order, upd.DeliveryCrewID); err != nil {
				return nil, err
			}
		}
		return s.saveOrder(order)
	}

	return nil, apperr.Forbiddenf("only managers or the assigned delivery crew may update orders")
}

// Delete removes an order. Manager only.
func (s *OrderService) Delete(caller auth.Caller, id string) error {
	if !caller.IsManager() {
		return apperr.Forbiddenf("only managers may delete orders")
	}
	return s.orderRepo.Delete(id)
}

// setStatus validates the requested status and the forward-only
// transition rule before applying it.
func (s *OrderService) setStatus(order *models.Order, status models.OrderStatus) error {
	if !models.ValidStatus(status) {
		return apperr.Validationf("invalid order status: %s", status)
	}
	if !models.CanTransition(order.Status, status) {
		return apperr.Validationf("order status may not move from %s back to %s", order.Status, status)
	}
	order.Status = status
	return nil
}

// assignCrew sets or clears the delivery crew of an order. The target
// user must exist and hold the Delivery crew role.
func (s *OrderService) assignCrew(order *models.Order, crewID *string) error {
	if crewID == nil {
		order.DeliveryCrewID = nil
		return nil
	}
	user, err := s.userRepo.GetByID(*crewID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validationf("delivery crew user %s does not exist", *crewID)
		}
		return err
	}
	holds, err := s.userRepo.HasRole(user.ID, auth.RoleDeliveryCrew)
	if err != nil {
		return err
	}
	if !holds {
		return apperr.Validationf("user %s is not a delivery crew member", user.Username)
	}
	order.DeliveryCrewID = crewID
	return nil
}

// saveOrder persists the mutated order and publishes the status event.
func (s *OrderService) saveOrder(order *models.Order) (*models.Order, error) {
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publish(rabbitmq.KeyOrderStatusUpdated, map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
	})
	return order, nil
}

// publish sends an order event to RabbitMQ. Publishing is best-effort:
// a broker problem is logged, never surfaced to the caller.
func (s *OrderService) publish(routingKey string, event map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
