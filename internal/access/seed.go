package access

import (
	"context"
	"fmt"
	"time"
)

// Seed installs the default role set when the store holds no roles yet
// (first-ever start). Existing data is never touched.
func Seed(ctx context.Context, store RoleStore) error {
	roles, err := store.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("seed: list roles: %w", err)
	}
	if len(roles) > 0 {
		return nil
	}
	for _, role := range DefaultRoles(time.Now().UTC()) {
		if err := store.UpsertRole(ctx, role); err != nil {
			return fmt.Errorf("seed role %s: %w", role.ID, err)
		}
	}
	return nil
}

// DefaultRoles returns the baseline role set. The super-admin tree is
// stored full for display purposes only; evaluation never reads it.
func DefaultRoles(now time.Time) []RoleDefinition {
	return []RoleDefinition{
		{
			ID:          roleIDs[RoleSuperAdmin],
			Name:        "Super Admin",
			Description: "Unrestricted access to every module.",
			Permissions: fullTree(),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          roleIDs[RoleAdmin],
			Name:        "Admin",
			Description: "Full operational access.",
			Permissions: fullTree(),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          roleIDs[RoleAccountant],
			Name:        "Accountant",
			Description: "Payroll, parties, and sales bookkeeping.",
			Permissions: grant(Normalize(nil), Crud{Read: true, Write: true, Edit: true},
				CategoryPayroll, CategoryParties, CategorySales),
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          roleIDs[RoleStaff],
			Name:        "Staff",
			Description: "Read-only dashboard access.",
			Permissions: grant(Normalize(nil), Crud{Read: true}, CategoryDashboard),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func fullTree() PermissionTree {
	tree := Normalize(nil)
	for category, subs := range tree {
		for sub := range subs {
			tree[category][sub] = FullAccess()
		}
	}
	return tree
}

func grant(tree PermissionTree, crud Crud, categories ...string) PermissionTree {
	for _, category := range categories {
		for sub := range tree[category] {
			tree[category][sub] = crud
		}
	}
	return tree
}
