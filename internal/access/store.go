package access

import "context"

// RoleStore is the persistence seam for role definitions. The engine is
// storage-agnostic: implementations persist trees verbatim and make no
// structural guarantees; consumers normalize on read. Every upsert is
// durable before it returns, and subsequent ListRoles calls in the same
// process reflect it.
type RoleStore interface {
	// ListRoles returns all known roles, root first, then creation order.
	ListRoles(ctx context.Context) ([]RoleDefinition, error)
	// GetRole returns the definition with the given ID or ErrNotFound.
	GetRole(ctx context.Context, id string) (RoleDefinition, error)
	// UpsertRole replaces the definition with a matching ID or appends a
	// new one. Requires a non-empty ID and name; the permission tree is
	// not validated here.
	UpsertRole(ctx context.Context, role RoleDefinition) error
}
