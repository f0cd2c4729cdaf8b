package access

// Session carries the resolved current user and the role definitions
// loaded for the request. It is constructed once per session/request
// and threaded explicitly; there is no ambient global state. All
// queries are pure and fail closed: missing users, unknown role
// references, and malformed scopes resolve to "no access", never to an
// error.
type Session struct {
	User  *User
	Roles []RoleDefinition
}

func (s Session) isRoot() bool {
	return s.User != nil && s.User.Role == RoleSuperAdmin
}

// HasRole reports whether the session's user holds one of the allowed
// roles. The super-admin role passes unconditionally.
func (s Session) HasRole(allowed ...RoleKind) bool {
	if s.User == nil {
		return false
	}
	if s.isRoot() {
		return true
	}
	for _, kind := range allowed {
		if s.User.Role == kind {
			return true
		}
	}
	return false
}

func (s Session) roleDefinition() (RoleDefinition, bool) {
	if s.User == nil {
		return RoleDefinition{}, false
	}
	id, ok := RoleID(s.User.Role)
	if !ok {
		return RoleDefinition{}, false
	}
	for _, role := range s.Roles {
		if role.ID == id {
			return role, true
		}
	}
	return RoleDefinition{}, false
}

// Permission returns the effective CRUD tuple for one catalog entry.
// The root short-circuit runs before any lookup so catalog drift or
// corrupted stored data can never lock the super-admin out. Taking the
// category and sub-module as separate arguments makes the dotted-scope
// contract a compile-time property; only HasModuleAccess accepts the
// string form.
func (s Session) Permission(category, subModule string) Crud {
	if s.User == nil {
		return NoAccess()
	}
	if s.isRoot() {
		return FullAccess()
	}
	role, ok := s.roleDefinition()
	if !ok {
		return NoAccess()
	}
	perms := Normalize(role.Permissions)
	if subs, ok := perms[category]; ok {
		if crud, ok := subs[subModule]; ok {
			return crud
		}
	}
	return NoAccess()
}

// HasModuleAccess reports whether the scope is visible to the session.
// A dotted scope checks that sub-module's read flag exactly; a bare
// category is an OR across the category's sub-modules ("any visibility
// into this area at all"). This predicate drives both navigation
// filtering and route admission, and it never consults
// write/edit/delete.
func (s Session) HasModuleAccess(scope string) bool {
	if s.User == nil {
		return false
	}
	if s.isRoot() {
		return true
	}
	category, subModule := ParseScope(scope)
	if category == "" {
		return false
	}
	role, ok := s.roleDefinition()
	if !ok {
		return false
	}
	perms := Normalize(role.Permissions)
	subs, ok := perms[category]
	if !ok {
		return false
	}
	if subModule != "" {
		return subs[subModule].Read
	}
	for _, crud := range subs {
		if crud.Read {
			return true
		}
	}
	return false
}
