package repositories

import (
	"bistro/internal/auth"
	"bistro/internal/models"
)

// UserRepository defines the interface for user and staff-roster data
// access. Role membership is stored as rows in the user_staff_roles
// join table.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)

	RolesOf(userID string) ([]auth.Role, error)
	HasRole(userID string, role auth.Role) (bool, error)
	ListByRole(role auth.Role) ([]models.User, error)
	AddRole(user *models.User, role auth.Role) error    // no-op if already a member
	RemoveRole(user *models.User, role auth.Role) error // membership is checked by the caller
}
