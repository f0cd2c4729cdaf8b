package access

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Editor drives the role-management screen. It holds an in-memory
// working copy of one role definition and applies bulk toggles at cell,
// row, category, and global granularity. Nothing touches the store
// until Save.
//
// The editor is read-only when the acting session lacks both write and
// edit on the role-management scope, or when the target is the reserved
// super-admin role. Toggles against a read-only editor are silent
// no-ops; Save returns ErrReadOnly.
type Editor struct {
	session  Session
	role     RoleDefinition
	readOnly bool
}

// NewEditor loads a role into an editor, normalizing its permission
// tree into the working copy.
func NewEditor(session Session, role RoleDefinition) *Editor {
	role.Permissions = Normalize(role.Permissions)
	perm := session.Permission(CategorySettings, SubModuleRole)
	readOnly := !perm.Write && !perm.Edit
	if role.IsRoot() {
		readOnly = true
	}
	return &Editor{session: session, role: role, readOnly: readOnly}
}

// ReadOnly reports whether every mutation on this editor is refused.
func (e *Editor) ReadOnly() bool {
	return e.readOnly
}

// Role returns a copy of the working state.
func (e *Editor) Role() RoleDefinition {
	role := e.role
	role.Permissions = e.role.Permissions.Clone()
	return role
}

// SetName updates the display name of the working copy.
func (e *Editor) SetName(name string) {
	if e.readOnly {
		return
	}
	e.role.Name = strings.TrimSpace(name)
}

// SetDescription updates the description of the working copy.
func (e *Editor) SetDescription(description string) {
	if e.readOnly {
		return
	}
	e.role.Description = strings.TrimSpace(description)
}

// SetCell flips a single CRUD flag for one sub-module.
func (e *Editor) SetCell(category, subModule string, flag Flag, v bool) {
	if e.readOnly || !Contains(category, subModule) || !ValidFlag(flag) {
		return
	}
	e.role.Permissions[category][subModule] = e.role.Permissions[category][subModule].with(flag, v)
}

// SetRow sets all four flags of one sub-module.
func (e *Editor) SetRow(category, subModule string, v bool) {
	if e.readOnly || !Contains(category, subModule) {
		return
	}
	e.role.Permissions[category][subModule] = uniform(v)
}

// SetCategory sets all four flags for every sub-module in a category.
func (e *Editor) SetCategory(category string, v bool) {
	if e.readOnly {
		return
	}
	for _, sub := range SubModules(category) {
		e.role.Permissions[category][sub] = uniform(v)
	}
}

// SetAll sets all four flags for every catalog entry.
func (e *Editor) SetAll(v bool) {
	if e.readOnly {
		return
	}
	for _, category := range Categories() {
		e.SetCategory(category, v)
	}
}

// ReplacePermissions swaps the whole working tree, normalized against
// the catalog. Used when a client submits a fully edited matrix.
func (e *Editor) ReplacePermissions(tree PermissionTree) {
	if e.readOnly {
		return
	}
	e.role.Permissions = Normalize(tree)
}

// RowChecked reports whether all four flags of a sub-module are set.
func (e *Editor) RowChecked(category, subModule string) bool {
	if !Contains(category, subModule) {
		return false
	}
	return e.role.Permissions[category][subModule].All()
}

// CategoryChecked reports whether every sub-module in the category has
// all four flags set.
func (e *Editor) CategoryChecked(category string) bool {
	subs := SubModules(category)
	if len(subs) == 0 {
		return false
	}
	for _, sub := range subs {
		if !e.role.Permissions[category][sub].All() {
			return false
		}
	}
	return true
}

// AllChecked reports whether every catalog entry has all four flags set.
func (e *Editor) AllChecked() bool {
	for _, category := range Categories() {
		if !e.CategoryChecked(category) {
			return false
		}
	}
	return true
}

// Save validates the working copy and writes it through the store. The
// tree is persisted as edited; normalization happens again on the next
// read.
func (e *Editor) Save(ctx context.Context, store RoleStore) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if strings.TrimSpace(e.role.Name) == "" {
		return fmt.Errorf("%w: role name is required", ErrInvalidInput)
	}
	e.role.UpdatedAt = time.Now().UTC()
	return store.UpsertRole(ctx, e.role)
}
