package access

// Crud is the four-flag access tuple attached to every catalog entry.
// The flags are independent: the model does not force write/edit/delete
// to imply read.
type Crud struct {
	Read   bool `json:"read"`
	Write  bool `json:"write"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// FullAccess returns a tuple with every flag set.
func FullAccess() Crud {
	return Crud{Read: true, Write: true, Edit: true, Delete: true}
}

// NoAccess returns the zero tuple. It is the default for every missing,
// unknown, or malformed lookup.
func NoAccess() Crud {
	return Crud{}
}

// All reports whether every flag is set.
func (c Crud) All() bool {
	return c.Read && c.Write && c.Edit && c.Delete
}

// Any reports whether at least one flag is set.
func (c Crud) Any() bool {
	return c.Read || c.Write || c.Edit || c.Delete
}

// Flag names one of the four CRUD flags for cell-level editor toggles.
type Flag string

const (
	FlagRead   Flag = "read"
	FlagWrite  Flag = "write"
	FlagEdit   Flag = "edit"
	FlagDelete Flag = "delete"
)

// ValidFlag reports whether f names a known CRUD flag.
func ValidFlag(f Flag) bool {
	switch f {
	case FlagRead, FlagWrite, FlagEdit, FlagDelete:
		return true
	}
	return false
}

func (c Crud) with(f Flag, v bool) Crud {
	switch f {
	case FlagRead:
		c.Read = v
	case FlagWrite:
		c.Write = v
	case FlagEdit:
		c.Edit = v
	case FlagDelete:
		c.Delete = v
	}
	return c
}

func uniform(v bool) Crud {
	return Crud{Read: v, Write: v, Edit: v, Delete: v}
}

// PermissionTree maps category -> sub-module -> Crud. Trees read from
// storage may be partial or stale; Normalize reconciles them against the
// catalog before evaluation.
type PermissionTree map[string]map[string]Crud

// Clone returns a deep copy of the tree.
func (t PermissionTree) Clone() PermissionTree {
	if t == nil {
		return nil
	}
	out := make(PermissionTree, len(t))
	for category, subs := range t {
		copied := make(map[string]Crud, len(subs))
		for sub, crud := range subs {
			copied[sub] = crud
		}
		out[category] = copied
	}
	return out
}
