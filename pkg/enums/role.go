package enums

import "strings"

// Role is the coarse account role reported by the auth endpoints.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsAdmin matches the backend's loose ADMIN/ROLE_ADMIN spellings.
func (r Role) IsAdmin() bool {
	return strings.Contains(strings.ToUpper(string(r)), "ADMIN")
}
