// Package routes maps a session role to the web surfaces the user is sent
// to after login and after forced logout. The mapping is pure; no state.
package routes

import "github.com/bariqpay/bariq-cli/session"

const (
	HomeGeneric  = "/"
	HomeCustomer = "/customer"
	HomeMerchant = "/merchant"
	HomeAdmin    = "/admin"

	LoginGeneric  = "/login"
	LoginCustomer = "/login/customer"
	LoginMerchant = "/login/merchant"
	LoginAdmin    = "/login/admin"
)

// HomeFor returns the dashboard path for a role. Unknown or absent roles
// land on the generic entry point.
func HomeFor(role session.Role) string {
	switch role {
	case session.RoleCustomer:
		return HomeCustomer
	case session.RoleMerchant:
		return HomeMerchant
	case session.RoleAdmin:
		return HomeAdmin
	default:
		return HomeGeneric
	}
}

// LoginFor returns the login surface for a role. Each role has its own
// login page; unknown or absent roles use the generic one.
func LoginFor(role session.Role) string {
	switch role {
	case session.RoleCustomer:
		return LoginCustomer
	case session.RoleMerchant:
		return LoginMerchant
	case session.RoleAdmin:
		return LoginAdmin
	default:
		return LoginGeneric
	}
}
