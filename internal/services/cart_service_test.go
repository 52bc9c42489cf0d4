package services_test

import (
	"testing"

	"bistro/internal/apperr"
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUser(userID string) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) ExistsForUser(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Create(cart *models.Cart) error {
	args := m.Called(cart)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func TestCartService_CreateSnapshotsPrices(t *testing.T) {
	cartRepo := new(MockCartRepository)
	menuItemRepo := new(MockMenuItemRepository)
	service := services.NewCartService(cartRepo, menuItemRepo)

	cartRepo.On("ExistsForUser", customer.UserID).Return(false, nil).Once()
	menuItemRepo.On("GetByID", "item-1").Return(&models.MenuItem{ID: "item-1", Title: "Pasta", Price: 9.50}, nil).Once()
	cartRepo.On("Create", mock.AnythingOfType("*models.Cart")).Return(nil).Once()

	cart, err := service.Create(customer, []services.CartLine{{MenuItemID: "item-1", Quantity: 3}})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 9.50, cart.Items[0].UnitPrice)
	assert.Equal(t, 28.50, cart.Items[0].Price)
	assert.Equal(t, 28.50, cart.Total)

	cartRepo.AssertExpectations(t)
	menuItemRepo.AssertExpectations(t)
}

func TestCartService_CreateConflictsWhenCartExists(t *testing.T) {
	cartRepo := new(MockCartRepository)
	menuItemRepo := new(MockMenuItemRepository)
	service := services.NewCartService(cartRepo, menuItemRepo)

	// Conflict regardless of payload: no menu item lookup happens
	cartRepo.On("ExistsForUser", customer.UserID).Return(true, nil).Twice()

	_, err := service.Create(customer, []services.CartLine{{MenuItemID: "item-1", Quantity: 1}})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = service.Create(customer, nil)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	cartRepo.AssertExpectations(t)
	menuItemRepo.AssertExpectations(t)
}

func TestCartService_CreateValidation(t *testing.T) {
	cartRepo := new(MockCartRepository)
	menuItemRepo := new(MockMenuItemRepository)
	service := services.NewCartService(cartRepo, menuItemRepo)

	cartRepo.On("ExistsForUser", customer.UserID).Return(false, nil).Times(3)

	// No lines
	_, err := service.Create(customer, nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Non-positive quantity
	_, err = service.Create(customer, []services.CartLine{{MenuItemID: "item-1", Quantity: 0}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Unknown menu item
	menuItemRepo.On("GetByID", "ghost").Return(nil, apperr.NotFoundf("menu item with ID ghost not found")).Once()
	_, err = service.Create(customer, []services.CartLine{{MenuItemID: "ghost", Quantity: 1}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	cartRepo.AssertExpectations(t)
	menuItemRepo.AssertExpectations(t)
}

func TestCartService_GetAndClear(t *testing.T) {
	cartRepo := new(MockCartRepository)
	menuItemRepo := new(MockMenuItemRepository)
	service := services.NewCartService(cartRepo, menuItemRepo)

	// Empty cart is NotFound
	cartRepo.On("GetByUser", customer.UserID).Return(nil, apperr.NotFoundf("the cart is empty")).Once()
	_, err := service.Get(customer)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Clearing a missing cart is NotFound
	cartRepo.On("DeleteByUser", customer.UserID).Return(apperr.NotFoundf("the cart is empty")).Once()
	err = service.Clear(customer)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Existing cart is returned as stored
	cart := &models.Cart{ID: "cart-1", UserID: customer.UserID, Total: 28.50}
	cartRepo.On("GetByUser", customer.UserID).Return(cart, nil).Once()
	got, err := service.Get(customer)
	assert.NoError(t, err)
	assert.Equal(t, cart, got)

	cartRepo.AssertExpectations(t)
}
