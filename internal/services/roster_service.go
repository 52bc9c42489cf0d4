package services

import (
	"bistro/internal/apperr"
	"bistro/internal/auth"
	"bistro/internal/models"
	"bistro/internal/repositories"
)

// RosterService handles staff role membership. Either roster may be
// read by admins and managers; the Manager roster is edited by site
// admins only, the Delivery-crew roster by admins or managers. Adding
// an existing member succeeds silently, removing a non-member is an
// explicit InvalidState failure.
type RosterService struct {
	userRepo repositories.UserRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(userRepo repositories.UserRepository) *RosterService {
	return &RosterService{
		userRepo: userRepo,
	}
}

// ListMembers returns the users holding the given role.
func (s *RosterService) ListMembers(caller auth.Caller, role auth.Role) ([]models.User, error) {
	if err := s.authorizeRead(caller, role); err != nil {
		return nil, err
	}
	return s.userRepo.ListByRole(role)
}

// AddMember adds the named user to the role. Idempotent: adding a user
// who already holds the role is a no-op success.
func (s *RosterService) AddMember(caller auth.Caller, role auth.Role, username string) (*models.User, error) {
	if err := s.authorize(caller, role); err != nil {
		return nil, err
	}
	if username == "" {
		return nil, apperr.Validationf("username is required")
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AddRole(user, role); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveMember removes the user from the role. Removing a user who does
// not hold the role fails with InvalidState, not a silent no-op.
func (s *RosterService) RemoveMember(caller auth.Caller, role auth.Role, userID string) (*models.User, error) {
	if err := s.authorize(caller, role); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	holds, err := s.userRepo.HasRole(user.ID, role)
	if err != nil {
		return nil, err
	}
	if !holds {
		return nil, apperr.InvalidStatef("user %s does not hold the %s role", user.Username, role)
	}
	if err := s.userRepo.RemoveRole(user, role); err != nil {
		return nil, err
	}
	return user, nil
}

// authorizeRead gates roster listing: admins and managers may read
// either roster.
func (s *RosterService) authorizeRead(caller auth.Caller, role auth.Role) error {
	if !role.Valid() {
		return apperr.Validationf("unknown role %q", role)
	}
	if !caller.IsAdmin && !caller.IsManager() {
		return apperr.Forbiddenf("only admins or managers may view the %s roster", role)
	}
	return nil
}

// authorize applies the per-roster edit policy: Manager membership is
// an admin-only concern, Delivery-crew membership is open to managers
// too.
func (s *RosterService) authorize(caller auth.Caller, role auth.Role) error {
	switch role {
	case auth.RoleManager:
		if !caller.IsAdmin {
			return apperr.Forbiddenf("only admins may manage the Manager roster")
		}
	case auth.RoleDeliveryCrew:
		if !caller.IsAdmin && !caller.IsManager() {
			return apperr.Forbiddenf("only managers may manage the Delivery crew roster")
		}
	default:
		return apperr.Validationf("unknown role %q", role)
	}
	return nil
}
