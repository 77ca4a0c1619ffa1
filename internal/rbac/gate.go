package rbac

import "github.com/dukahub/dukapos-backend/pkg/enums"

// CanAccess reports whether the actual role satisfies the required capability
// tier. Tiers are strictly ordered (admin ⊇ manager ⊇ cashier), so a higher
// tier always inherits the capabilities of the tiers below it. Unknown roles
// never pass.
func CanAccess(required, actual enums.Role) bool {
	if !required.IsValid() || !actual.IsValid() {
		return false
	}
	return actual.Tier() >= required.Tier()
}

// DashboardPath returns the landing route for a role. Denied navigation
// redirects here instead of a generic error page.
func DashboardPath(role enums.Role) string {
	switch role {
	case enums.RoleAdmin:
		return "/admin/dashboard"
	case enums.RoleManager:
		return "/store/dashboard"
	default:
		return "/pos/dashboard"
	}
}
