package access

import "time"

// RoleKind identifies the role assigned to a user. A user carries
// exactly one role; there is no composition.
type RoleKind string

const (
	RoleSuperAdmin RoleKind = "super_admin"
	RoleAdmin      RoleKind = "admin"
	RoleAccountant RoleKind = "accountant"
	RoleStaff      RoleKind = "staff"
)

// roleIDs is the single place mapping a role kind to its stored
// role-definition ID. Reviewed together with the catalog; never resolve
// a kind to an ID anywhere else.
var roleIDs = map[RoleKind]string{
	RoleSuperAdmin: "role-super-admin",
	RoleAdmin:      "role-admin",
	RoleAccountant: "role-accountant",
	RoleStaff:      "role-staff",
}

// RoleID resolves a role kind to its definition ID.
func RoleID(kind RoleKind) (string, bool) {
	id, ok := roleIDs[kind]
	return id, ok
}

// RootRoleID is the definition ID of the reserved super-admin role.
func RootRoleID() string {
	return roleIDs[RoleSuperAdmin]
}

// ParseRoleKind validates an externally supplied role name.
func ParseRoleKind(s string) (RoleKind, bool) {
	kind := RoleKind(s)
	_, ok := roleIDs[kind]
	return kind, ok
}

// RoleDefinition is a named permission matrix. The stored Permissions
// tree may lag behind the catalog; consumers normalize on read.
type RoleDefinition struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Permissions PermissionTree `json:"permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsRoot reports whether this definition is the reserved super-admin
// role. Root permissions are definitionally full and are evaluated
// dynamically, never read from the stored tree.
func (r RoleDefinition) IsRoot() bool {
	return r.ID == RootRoleID()
}

// User is the slice of the session owner the engine needs: identity,
// single role reference, and organization membership. It is owned by
// the external auth collaborator.
type User struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	AvatarURL             string   `json:"avatar_url,omitempty"`
	Role                  RoleKind `json:"role"`
	OrganizationIDs       []string `json:"organization_ids,omitempty"`
	CurrentOrganizationID string   `json:"current_organization_id,omitempty"`
}
