// Package access centralizes role-based visibility decisions. Every
// page/route gate in the API is one CanAccess call; nothing else in the
// codebase inspects roles directly.
package access

import "haulhub/internal/domain"

// Resource identifies a protected page or API surface.
type Resource string

const (
	ResourceDashboard Resource = "dashboard"
	ResourceHauls     Resource = "hauls"
	ResourceTrucks    Resource = "trucks"
	ResourceReports   Resource = "reports"
	ResourceSettings  Resource = "settings"
)

// CanAccess reports whether a role may use a resource. Reports are admin
// only; fleet (truck) management is admin or dispatcher; every other
// protected resource is open to any authenticated role. Unknown roles
// are denied everywhere.
func CanAccess(role domain.Role, resource Resource) bool {
	if !isKnownRole(role) {
		return false
	}

	switch resource {
	case ResourceReports:
		return role == domain.RoleAdmin
	case ResourceTrucks:
		return role == domain.RoleAdmin || role == domain.RoleDispatcher
	default:
		return true
	}
}

func isKnownRole(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleDriver, domain.RoleDispatcher:
		return true
	}
	return false
}
