package access

// The permission catalog is the sole source of truth for every feature
// area the engine can gate. It ships as code; stored role definitions
// are reconciled against it on read (see Normalize). Adding a category
// or sub-module here requires no data migration.

const (
	CategoryDashboard = "Dashboard"
	CategoryPayroll   = "Payroll"
	CategoryParties   = "Parties"
	CategoryInventory = "Inventory"
	CategorySales     = "Sales"
	CategorySettings  = "Settings"
)

// ScopeRoleSettings is the scope that guards the role editor itself.
const ScopeRoleSettings = CategorySettings + "." + SubModuleRole

const SubModuleRole = "Role"

type catalogEntry struct {
	category   string
	subModules []string
}

var catalog = []catalogEntry{
	{CategoryDashboard, []string{"Overview", "Reports"}},
	{CategoryPayroll, []string{"Employee", "Attendance", "Salary"}},
	{CategoryParties, []string{"Customer", "Supplier"}},
	{CategoryInventory, []string{"Product", "Stock", "Batch"}},
	{CategorySales, []string{"Invoice", "Quotation", "Payment"}},
	{CategorySettings, []string{SubModuleRole, "User", "Organization"}},
}

// Categories returns every category in catalog order.
func Categories() []string {
	out := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, entry.category)
	}
	return out
}

// SubModules returns the ordered sub-modules of a category, nil when the
// category is not declared.
func SubModules(category string) []string {
	for _, entry := range catalog {
		if entry.category == category {
			out := make([]string, len(entry.subModules))
			copy(out, entry.subModules)
			return out
		}
	}
	return nil
}

// Contains reports whether the (category, subModule) pair is declared in
// the catalog. An undeclared pair is invisible to every evaluation path.
func Contains(category, subModule string) bool {
	for _, entry := range catalog {
		if entry.category != category {
			continue
		}
		for _, sub := range entry.subModules {
			if sub == subModule {
				return true
			}
		}
		return false
	}
	return false
}
