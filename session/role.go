package session

import "fmt"

// Role identifies which of the three Bariq account types a session belongs to.
// It decides the home and login surfaces the user is routed to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"

	// RoleNone is the absence of a role, e.g. before login or after teardown.
	RoleNone Role = ""
)

// ParseRole converts a stored or user-supplied string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleMerchant, RoleAdmin:
		return Role(s), nil
	case RoleNone:
		return RoleNone, nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q (must be one of: customer, merchant, admin)", s)
	}
}

// Valid reports whether the role is one of the three known account types.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleMerchant || r == RoleAdmin
}
