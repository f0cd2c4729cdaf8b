package httpapi

import (
	"net/http"

	"tallio.org/internal/access"
)

// NavItem is one navigation entry as served to clients.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Scope string `json:"scope"`
}

type navEntry struct {
	item  NavItem
	roles []access.RoleKind
}

// navTree is the full menu. Both the navigation feed and the module
// routes are derived from this one table; the guard and the filter
// apply the same checks in the same order.
var navTree = []navEntry{
	{item: NavItem{Label: "Dashboard", Path: "/dashboard", Scope: access.CategoryDashboard}},
	{item: NavItem{Label: "Employees", Path: "/employees", Scope: access.CategoryPayroll}},
	{item: NavItem{Label: "Attendance", Path: "/attendance", Scope: "Payroll.Attendance"}},
	{item: NavItem{Label: "Salaries", Path: "/salaries", Scope: "Payroll.Salary"}},
	{item: NavItem{Label: "Customers", Path: "/customers", Scope: "Parties.Customer"}},
	{item: NavItem{Label: "Suppliers", Path: "/suppliers", Scope: "Parties.Supplier"}},
	{item: NavItem{Label: "Products", Path: "/products", Scope: "Inventory.Product"}},
	{item: NavItem{Label: "Stock", Path: "/stock", Scope: "Inventory.Stock"}},
	{item: NavItem{Label: "Batches", Path: "/batches", Scope: "Inventory.Batch"}},
	{item: NavItem{Label: "Invoices", Path: "/invoices", Scope: "Sales.Invoice"}},
	{item: NavItem{Label: "Quotations", Path: "/quotations", Scope: "Sales.Quotation"}},
	{item: NavItem{Label: "Payments", Path: "/payments", Scope: "Sales.Payment"}},
	{item: NavItem{Label: "Roles", Path: "/settings/roles", Scope: access.ScopeRoleSettings}},
	{item: NavItem{Label: "Users", Path: "/settings/users", Scope: "Settings.User"}},
	{
		item:  NavItem{Label: "Organization", Path: "/settings/organization", Scope: "Settings.Organization"},
		roles: []access.RoleKind{access.RoleSuperAdmin, access.RoleAdmin},
	},
}

// handleNavigation returns the menu entries visible to the session,
// filtered with the exact checks the route guard applies.
func (a *API) handleNavigation(w http.ResponseWriter, r *http.Request, sess access.Session) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	items := make([]NavItem, 0, len(navTree))
	for _, entry := range navTree {
		if len(entry.roles) > 0 && !sess.HasRole(entry.roles...) {
			continue
		}
		if !sess.HasModuleAccess(entry.item.Scope) {
			continue
		}
		items = append(items, entry.item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleModulePage serves a minimal page descriptor for a guarded
// module route. The business pages themselves live elsewhere; the
// engine only decides reachability.
func (a *API) handleModulePage(item NavItem) guardedHandler {
	return func(w http.ResponseWriter, r *http.Request, sess access.Session) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		category, subModule := access.ParseScope(item.Scope)
		payload := map[string]any{
			"module": item.Label,
			"path":   item.Path,
			"scope":  item.Scope,
		}
		if subModule != "" {
			// Field-level edit locks on the page come from the full tuple.
			payload["permission"] = sess.Permission(category, subModule)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
