package domain

// Permission is a static tag gating a UI action or page section,
// formatted as "<area>.<action>".
type Permission string

const (
	PermLeadsView   Permission = "leads.view"
	PermLeadsCreate Permission = "leads.create"
	PermLeadsAssign Permission = "leads.assign"

	PermSalesViewPipeline  Permission = "sales.view_pipeline"
	PermSalesCreateBooking Permission = "sales.create_booking"
	PermSalesApplyDiscount Permission = "sales.apply_discount"

	PermBookingsView Permission = "bookings.view"
	PermBookingsEdit Permission = "bookings.edit"

	PermFinanceViewPayments  Permission = "finance.view_payments"
	PermFinanceRecordPayment Permission = "finance.record_payment"
	PermFinanceViewInvoices  Permission = "finance.view_invoices"
	PermFinanceViewContracts Permission = "finance.view_contracts"
	PermFinanceApproveRefund Permission = "finance.approve_refund"

	PermContractsView Permission = "contracts.view"
	PermContractsSign Permission = "contracts.sign"

	PermVendorsView   Permission = "vendors.view"
	PermVendorsManage Permission = "vendors.manage"

	PermReportsView Permission = "reports.view"

	PermAdminManageUsers Permission = "admin.manage_users"
	PermAdminViewAudit   Permission = "admin.view_audit"
)

// permissionCatalog fixes the canonical ordering used whenever permission
// sets are listed.
var permissionCatalog = []Permission{
	PermLeadsView, PermLeadsCreate, PermLeadsAssign,
	PermSalesViewPipeline, PermSalesCreateBooking, PermSalesApplyDiscount,
	PermBookingsView, PermBookingsEdit,
	PermFinanceViewPayments, PermFinanceRecordPayment, PermFinanceViewInvoices,
	PermFinanceViewContracts, PermFinanceApproveRefund,
	PermContractsView, PermContractsSign,
	PermVendorsView, PermVendorsManage,
	PermReportsView,
	PermAdminManageUsers, PermAdminViewAudit,
}

var catalogIndex = func() map[Permission]int {
	idx := make(map[Permission]int, len(permissionCatalog))
	for i, p := range permissionCatalog {
		idx[p] = i
	}
	return idx
}()

// rolePermissions is the static role table. It is never mutated after init.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: permissionCatalog,
	RoleSalesAgent: {
		PermLeadsView, PermLeadsCreate,
		PermSalesViewPipeline, PermSalesCreateBooking,
		PermBookingsView, PermContractsView, PermVendorsView,
	},
	RoleCallCenter: {
		PermLeadsView, PermLeadsCreate, PermLeadsAssign,
		PermBookingsView,
	},
	RoleFinanceManager: {
		PermBookingsView,
		PermFinanceViewPayments, PermFinanceRecordPayment, PermFinanceViewInvoices,
		PermFinanceViewContracts, PermFinanceApproveRefund,
		PermContractsView, PermReportsView,
	},
	RoleCoordinator: {
		PermBookingsView, PermBookingsEdit,
		PermContractsView,
		PermVendorsView, PermVendorsManage,
	},
}

// AllPermissions returns the permission catalog in canonical order.
func AllPermissions() []Permission {
	out := make([]Permission, len(permissionCatalog))
	copy(out, permissionCatalog)
	return out
}

// Known reports whether p is part of the catalog.
func (p Permission) Known() bool {
	_, ok := catalogIndex[p]
	return ok
}

// PermissionsForRole returns a copy of the static entry for r.
// Roles without an entry yield an empty list.
func PermissionsForRole(r Role) []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether user holds p through any assigned role or a
// custom override. A nil user holds nothing.
func HasPermission(user *UserProfile, p Permission) bool {
	if user == nil {
		return false
	}
	for _, r := range user.AssignedRoles() {
		for _, granted := range rolePermissions[r] {
			if granted == p {
				return true
			}
		}
	}
	for _, granted := range user.CustomPermissions {
		if granted == p {
			return true
		}
	}
	return false
}

// EffectivePermissions is the union of every assigned role's permissions and
// the custom overrides, in catalog order. Tags outside the catalog come last
// in the order they were granted.
func EffectivePermissions(user *UserProfile) []Permission {
	if user == nil {
		return []Permission{}
	}

	granted := make(map[Permission]struct{})
	for _, r := range user.AssignedRoles() {
		for _, p := range rolePermissions[r] {
			granted[p] = struct{}{}
		}
	}

	var extras []Permission
	for _, p := range user.CustomPermissions {
		if _, dup := granted[p]; dup {
			continue
		}
		granted[p] = struct{}{}
		if !p.Known() {
			extras = append(extras, p)
		}
	}

	out := make([]Permission, 0, len(granted))
	for _, p := range permissionCatalog {
		if _, ok := granted[p]; ok {
			out = append(out, p)
		}
	}
	return append(out, extras...)
}

// Guard renders children when user holds p, otherwise the fallback.
// A nil fallback renders nothing (the zero value).
func Guard[T any](user *UserProfile, p Permission, children func() T, fallback func() T) (T, bool) {
	if HasPermission(user, p) {
		return children(), true
	}
	var zero T
	if fallback != nil {
		return fallback(), false
	}
	return zero, false
}
