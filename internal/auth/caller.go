package auth

// Role is a staff role derived from roster membership. A user with no
// staff role is a plain customer.
type Role string

const (
	RoleManager      Role = "Manager"
	RoleDeliveryCrew Role = "Delivery crew"
)

// Valid reports whether r is a known staff role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleDeliveryCrew
}

// RoleSet is the resolved role membership of a caller.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from a list of roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports membership of a single role.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// Caller is the authenticated identity of a request. It is built once
// per request by the auth middleware (roles resolved once, never
// re-queried mid-handler) and treated as immutable by handlers and
// services.
type Caller struct {
	UserID   string
	Username string
	IsAdmin  bool
	Roles    RoleSet
}

// IsManager reports whether the caller holds the Manager role.
func (c Caller) IsManager() bool {
	return c.Roles.Has(RoleManager)
}

// IsDeliveryCrew reports whether the caller holds the Delivery crew role.
func (c Caller) IsDeliveryCrew() bool {
	return c.Roles.Has(RoleDeliveryCrew)
}
