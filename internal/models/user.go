package models

import "gorm.io/gorm"

// User is an account of the ordering system. Staff authority comes from
// StaffRole membership, not from the user row itself; IsAdmin marks the
// site administrators who may edit the Manager roster.
type User struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string      `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string      `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string      `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	IsAdmin    bool        `json:"is_admin" gorm:"default:false"`
	Roles      []StaffRole `json:"roles,omitempty" gorm:"many2many:user_staff_roles"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// StaffRole is a named staff group (Manager, Delivery crew). Membership
// is many-to-many: holding one role never excludes the other.
type StaffRole struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
