package access

import (
	"testing"
	"time"
)

func testRoles(t *testing.T) []RoleDefinition {
	t.Helper()
	return DefaultRoles(time.Now().UTC())
}

func sessionFor(kind RoleKind, roles []RoleDefinition) Session {
	return Session{
		User:  &User{ID: "u1", Name: "Test User", Email: "test@example.com", Role: kind},
		Roles: roles,
	}
}

func TestRootBypass(t *testing.T) {
	// Root must win for any scope, even with empty or corrupted stored
	// data, before any lookup happens.
	corrupted := []RoleDefinition{
		{ID: RootRoleID(), Name: "Super Admin", Permissions: PermissionTree{"Garbage": {"X": {}}}},
	}
	for _, roles := range [][]RoleDefinition{nil, {}, corrupted} {
		sess := sessionFor(RoleSuperAdmin, roles)
		for _, scope := range []string{"Payroll", "Payroll.Employee", "Unknown.Thing", "", "..."} {
			if !sess.HasModuleAccess(scope) {
				t.Fatalf("root denied scope %q", scope)
			}
		}
		if got := sess.Permission(CategorySettings, SubModuleRole); !got.All() {
			t.Fatalf("root permission not full: %+v", got)
		}
	}
}

func TestFailClosedWithoutUser(t *testing.T) {
	sess := Session{Roles: testRoles(t)}
	if sess.HasModuleAccess("Payroll") {
		t.Fatal("nil user granted module access")
	}
	if sess.HasRole(RoleAdmin, RoleStaff) {
		t.Fatal("nil user matched a role")
	}
	if got := sess.Permission(CategoryPayroll, "Employee"); got.Any() {
		t.Fatalf("nil user received permission %+v", got)
	}
}

func TestHasRole(t *testing.T) {
	roles := testRoles(t)
	cases := []struct {
		kind    RoleKind
		allowed []RoleKind
		want    bool
	}{
		{RoleAdmin, []RoleKind{RoleAdmin}, true},
		{RoleAdmin, []RoleKind{RoleAccountant}, false},
		{RoleSuperAdmin, []RoleKind{RoleAccountant}, true},
		{RoleStaff, nil, false},
		{RoleSuperAdmin, nil, true},
	}
	for _, tc := range cases {
		sess := sessionFor(tc.kind, roles)
		if got := sess.HasRole(tc.allowed...); got != tc.want {
			t.Fatalf("HasRole(%v) for %s = %v, want %v", tc.allowed, tc.kind, got, tc.want)
		}
	}
}

func TestCategoryORReduction(t *testing.T) {
	roles := []RoleDefinition{
		{
			ID:   roleIDs[RoleStaff],
			Name: "Staff",
			Permissions: PermissionTree{
				CategoryParties: {
					"Customer": {Read: true},
					"Supplier": {},
				},
			},
		},
	}
	sess := sessionFor(RoleStaff, roles)

	if !sess.HasModuleAccess(CategoryParties) {
		t.Fatal("category with one readable sub-module should be visible")
	}
	if !sess.HasModuleAccess("Parties.Customer") {
		t.Fatal("readable sub-module denied")
	}
	if sess.HasModuleAccess("Parties.Supplier") {
		t.Fatal("dotted scope must reflect only its own sub-module")
	}
	if sess.HasModuleAccess(CategorySales) {
		t.Fatal("category with no readable sub-modules should be hidden")
	}
}

func TestDeletedRoleReference(t *testing.T) {
	// The user's kind maps to a definition ID that is absent from the
	// store. Everything fails closed, nothing panics.
	roles := []RoleDefinition{
		{ID: roleIDs[RoleAdmin], Name: "Admin", Permissions: fullTree()},
	}
	sess := sessionFor(RoleAccountant, roles)

	if sess.HasModuleAccess("Payroll") {
		t.Fatal("deleted role reference granted access")
	}
	if sess.HasRole(RoleAccountant) != true {
		// HasRole matches the kind itself, not the stored definition.
		t.Fatal("HasRole should match by kind")
	}
	if got := sess.Permission(CategoryPayroll, "Employee"); got.Any() {
		t.Fatalf("deleted role reference received permission %+v", got)
	}
}

func TestUnknownRoleKind(t *testing.T) {
	sess := sessionFor(RoleKind("ghost"), testRoles(t))
	if sess.HasModuleAccess("Payroll") {
		t.Fatal("unknown role kind granted access")
	}
	if got := sess.Permission(CategoryPayroll, "Employee"); got.Any() {
		t.Fatalf("unknown role kind received permission %+v", got)
	}
}

func TestMalformedScopes(t *testing.T) {
	// Malformed and undeclared scopes are "no match", never an error.
	sess := sessionFor(RoleAdmin, testRoles(t))
	for _, scope := range []string{"", ".", "Payroll.", ".Employee", "  ", "Nope", "Nope.Nada"} {
		if sess.HasModuleAccess(scope) {
			t.Fatalf("scope %q granted access", scope)
		}
	}
}

func TestParseScope(t *testing.T) {
	cases := []struct {
		in       string
		category string
		sub      string
	}{
		{"Sales", "Sales", ""},
		{"Settings.Role", "Settings", "Role"},
		{" Settings . Role ", "Settings", "Role"},
		{"", "", ""},
		{"Sales.", "", ""},
		{".Role", "", "Role"},
	}
	for _, tc := range cases {
		category, sub := ParseScope(tc.in)
		if category != tc.category || sub != tc.sub {
			t.Fatalf("ParseScope(%q) = (%q, %q), want (%q, %q)", tc.in, category, sub, tc.category, tc.sub)
		}
	}
}
