package access

import "strings"

// ParseScope splits a scope string into its category and sub-module
// parts. A bare category yields an empty sub-module. Malformed input
// (empty string, trailing dot) yields an empty category, which no
// evaluation path matches.
func ParseScope(scope string) (category, subModule string) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return "", ""
	}
	category, subModule, found := strings.Cut(scope, ".")
	category = strings.TrimSpace(category)
	subModule = strings.TrimSpace(subModule)
	if found && subModule == "" {
		return "", ""
	}
	return category, subModule
}
