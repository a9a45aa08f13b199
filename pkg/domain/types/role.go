package types

import "fmt"

// Role is the viewer role the dashboard is served for
type Role string

const (
	// RoleAdmin sees every student, global statistics and mentor workloads
	RoleAdmin Role = "admin"
	// RoleMentor sees only the students assigned to the current mentor
	RoleMentor Role = "mentor"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMentor:
		return true
	default:
		return false
	}
}

// IsMentor reports whether the dashboard is mentor-scoped
func (r Role) IsMentor() bool {
	return r == RoleMentor
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
