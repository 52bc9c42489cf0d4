package services

import (
	"log"

	"bistro/internal/auth"
	"bistro/internal/repositories"
)

// RoleService resolves the staff roles of a caller. It is invoked once
// per request by the auth middleware; the resulting role set travels
// with the request and is never re-queried mid-handler.
type RoleService struct {
	userRepo repositories.UserRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(userRepo repositories.UserRepository) *RoleService {
	return &RoleService{
		userRepo: userRepo,
	}
}

// RolesOf returns the role set of a user. Unknown users and lookup
// failures yield the empty set (a plain customer), never an error.
func (s *RoleService) RolesOf(userID string) auth.RoleSet {
	roles, err := s.userRepo.RolesOf(userID)
	if err != nil {
		log.Printf("Role lookup failed for user %s, treating as customer: %v", userID, err)
		return auth.RoleSet{}
	}
	return auth.NewRoleSet(roles...)
}
