package domain

// NavItem is a sidebar entry and the roles allowed to see it.
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
	Roles []Role `json:"-"`
}

var everyRole = []Role{RoleSuperAdmin, RoleSalesAgent, RoleCallCenter, RoleFinanceManager, RoleCoordinator}

var navigation = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Href: "/", Icon: "layout-dashboard", Roles: everyRole},
	{Key: "leads", Label: "Leads", Href: "/leads", Icon: "phone-incoming", Roles: []Role{RoleSuperAdmin, RoleSalesAgent, RoleCallCenter}},
	{Key: "pipeline", Label: "Sales Pipeline", Href: "/sales", Icon: "kanban", Roles: []Role{RoleSuperAdmin, RoleSalesAgent}},
	{Key: "new-booking", Label: "New Booking", Href: "/sales/new", Icon: "calendar-plus", Roles: []Role{RoleSuperAdmin, RoleSalesAgent}},
	{Key: "bookings", Label: "Bookings", Href: "/bookings", Icon: "calendar", Roles: everyRole},
	{Key: "payments", Label: "Payments", Href: "/finance/payments", Icon: "credit-card", Roles: []Role{RoleSuperAdmin, RoleFinanceManager}},
	{Key: "invoices", Label: "Invoices", Href: "/finance/invoices", Icon: "receipt", Roles: []Role{RoleSuperAdmin, RoleFinanceManager}},
	{Key: "contracts", Label: "Contracts", Href: "/contracts", Icon: "file-signature", Roles: []Role{RoleSuperAdmin, RoleSalesAgent, RoleFinanceManager, RoleCoordinator}},
	{Key: "vendors", Label: "Vendors & Arrangements", Href: "/vendors", Icon: "truck", Roles: []Role{RoleSuperAdmin, RoleCoordinator}},
	{Key: "reports", Label: "Reports", Href: "/reports", Icon: "bar-chart", Roles: []Role{RoleSuperAdmin, RoleFinanceManager}},
	{Key: "users", Label: "Users", Href: "/admin/users", Icon: "users", Roles: []Role{RoleSuperAdmin}},
	{Key: "audit", Label: "Audit Log", Href: "/admin/audit", Icon: "shield", Roles: []Role{RoleSuperAdmin}},
}

// Navigation returns a copy of the static sidebar list in source order.
func Navigation() []NavItem {
	out := make([]NavItem, len(navigation))
	copy(out, navigation)
	return out
}

// FilterNavigation keeps the items whose allowed roles include role.
// Source order is preserved.
func FilterNavigation(items []NavItem, role Role) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		for _, allowed := range item.Roles {
			if allowed == role {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// NavigationFor filters the static sidebar by the given primary role.
func NavigationFor(role Role) []NavItem {
	return FilterNavigation(navigation, role)
}
