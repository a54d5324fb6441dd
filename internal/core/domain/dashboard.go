package domain

// Widget is a dashboard card. It is shown only to users holding Requires.
type Widget struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Requires Permission `json:"requires"`
}

var widgets = []Widget{
	{Key: "new-leads", Title: "New leads today", Requires: PermLeadsView},
	{Key: "pipeline-value", Title: "Pipeline value", Requires: PermSalesViewPipeline},
	{Key: "upcoming-events", Title: "Upcoming events", Requires: PermBookingsView},
	{Key: "outstanding-payments", Title: "Outstanding payments", Requires: PermFinanceViewPayments},
	{Key: "pending-contracts", Title: "Contracts awaiting signature", Requires: PermContractsView},
	{Key: "vendor-tasks", Title: "Vendor arrangements", Requires: PermVendorsView},
	{Key: "revenue", Title: "Revenue this month", Requires: PermReportsView},
	{Key: "staff", Title: "Active staff", Requires: PermAdminManageUsers},
}

// DashboardFor returns the widgets user may see, in layout order.
func DashboardFor(user *UserProfile) []Widget {
	out := make([]Widget, 0, len(widgets))
	for _, w := range widgets {
		w := w
		if card, ok := Guard(user, w.Requires, func() Widget { return w }, nil); ok {
			out = append(out, card)
		}
	}
	return out
}
