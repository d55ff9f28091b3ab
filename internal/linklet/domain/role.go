package domain

import "fmt"

// Role is the closed set of roles a user can hold. There is no hierarchy
// between roles; every authorization check matches exactly one of them.
// The zero value means the user has no role assigned yet.
type Role string

const (
	RoleNone       Role = ""
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleMember     Role = "Member"
)

// RoleDisplayNone is the sentinel shown for users without an assigned role.
const RoleDisplayNone = "N/A"

// ParseRole validates a role name supplied over the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		return Role(s), nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// Display returns the role name, or the "N/A" sentinel for unassigned users.
func (r Role) Display() string {
	if r == RoleNone {
		return RoleDisplayNone
	}
	return string(r)
}

func (r Role) String() string { return string(r) }
