package domain

import "strings"

// Role identifies a job function. Roles bucket permissions and decide which
// sidebar entries a user sees.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleSalesAgent     Role = "sales_agent"
	RoleCallCenter     Role = "call_center"
	RoleFinanceManager Role = "finance_manager"
	RoleCoordinator    Role = "coordinator"
)

var allRoles = []Role{
	RoleSuperAdmin,
	RoleSalesAgent,
	RoleCallCenter,
	RoleFinanceManager,
	RoleCoordinator,
}

var roleLabels = map[Role]string{
	RoleSuperAdmin:     "Super Admin",
	RoleSalesAgent:     "Sales Agent",
	RoleCallCenter:     "Call Center",
	RoleFinanceManager: "Finance Manager",
	RoleCoordinator:    "Coordinator",
}

// AllRoles returns the role catalog in display order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole converts a raw tag into a Role, rejecting anything outside the catalog.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is part of the catalog.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label is the human readable name shown in the UI.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}
