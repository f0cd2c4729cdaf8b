package access

// Normalize reconciles a stored permission tree against the current
// catalog. The result contains exactly one entry per declared
// (category, sub-module) pair: present entries are copied verbatim,
// missing ones are filled with NoAccess, and entries for catalog items
// that no longer exist are dropped. Idempotent, so catalog drift in
// stored data never surfaces as an error.
func Normalize(raw PermissionTree) PermissionTree {
	out := make(PermissionTree, len(catalog))
	for _, entry := range catalog {
		subs := make(map[string]Crud, len(entry.subModules))
		for _, sub := range entry.subModules {
			if stored, ok := raw[entry.category][sub]; ok {
				subs[sub] = stored
			} else {
				subs[sub] = NoAccess()
			}
		}
		out[entry.category] = subs
	}
	return out
}
