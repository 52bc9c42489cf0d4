package repositories

import (
	"errors"
	"fmt"

	"bistro/internal/apperr"
	"bistro/internal/auth"
	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// RolesOf retrieves the staff roles a user belongs to.
func (r *GORMUserRepository) RolesOf(userID string) ([]auth.Role, error) {
	var names []string
	err := r.db.Model(&models.StaffRole{}).
		Joins("JOIN user_staff_roles ON user_staff_roles.staff_role_id = staff_roles.id").
		Where("user_staff_roles.user_id = ?", userID).
		Pluck("staff_roles.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles of user %s: %w", userID, err)
	}
	roles := make([]auth.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, auth.Role(name))
	}
	return roles, nil
}

// HasRole reports whether a user is a member of the given staff role.
func (r *GORMUserRepository) HasRole(userID string, role auth.Role) (bool, error) {
	var count int64
	err := r.db.Model(&models.StaffRole{}).
		Joins("JOIN user_staff_roles ON user_staff_roles.staff_role_id = staff_roles.id").
		Where("user_staff_roles.user_id = ? AND staff_roles.name = ?", userID, string(role)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role %s of user %s: %w", role, userID, err)
	}
	return count > 0, nil
}

// ListByRole retrieves all users holding the given staff role.
func (r *GORMUserRepository) ListByRole(role auth.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_staff_roles ON user_staff_roles.user_id = users.id").
		Joins("JOIN staff_roles ON staff_roles.id = user_staff_roles.staff_role_id").
		Where("staff_roles.name = ?", string(role)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", role, err)
	}
	return users, nil
}

// AddRole adds a user to a staff role. Adding an existing member is a
// no-op; GORM upserts the join row with ON CONFLICT DO NOTHING.
func (r *GORMUserRepository) AddRole(user *models.User, role auth.Role) error {
	row, err := r.staffRole(role)
	if err != nil {
		return err
	}
	if err := r.db.Model(user).Association("Roles").Append(row); err != nil {
		return fmt.Errorf("failed to add user %s to role %s: %w", user.ID, role, err)
	}
	return nil
}

// RemoveRole removes a user from a staff role.
func (r *GORMUserRepository) RemoveRole(user *models.User, role auth.Role) error {
	row, err := r.staffRole(role)
	if err != nil {
		return err
	}
	if err := r.db.Model(user).Association("Roles").Delete(row); err != nil {
		return fmt.Errorf("failed to remove user %s from role %s: %w", user.ID, role, err)
	}
	return nil
}

// staffRole looks up the role row, creating it on first use so the
// roster works without a seeding step.
func (r *GORMUserRepository) staffRole(role auth.Role) (*models.StaffRole, error) {
	var row models.StaffRole
	err := r.db.
		Where(models.StaffRole{Name: string(role)}).
		Attrs(models.StaffRole{ID: uuid.New().String()}).
		FirstOrCreate(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staff role %s: %w", role, err)
	}
	return &row, nil
}
