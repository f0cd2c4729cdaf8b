package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"tallio.org/internal/access"
	"tallio.org/internal/ids"
)

type roleRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Permissions access.PermissionTree `json:"permissions"`
}

type toggleRequest struct {
	Op        string `json:"op"` // cell | row | category | all
	Category  string `json:"category,omitempty"`
	SubModule string `json:"sub_module,omitempty"`
	Flag      string `json:"flag,omitempty"`
	Value     bool   `json:"value"`
}

func (a *API) handleRolesCollection(w http.ResponseWriter, r *http.Request, sess access.Session) {
	switch r.Method {
	case http.MethodGet:
		a.listRoles(w, r)
	case http.MethodPost:
		a.createRole(w, r, sess)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleRoleResource(w http.ResponseWriter, r *http.Request, sess access.Session) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/roles/"), "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			a.getRole(w, r, parts[0])
		case http.MethodPut:
			a.updateRole(w, r, sess, parts[0])
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
		}
	case len(parts) == 2 && parts[1] == "permissions":
		if r.Method != http.MethodPatch {
			methodNotAllowed(w, r, http.MethodPatch)
			return
		}
		a.toggleRolePermissions(w, r, sess, parts[0])
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := a.store.ListRoles(r.Context())
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	// Responses always carry catalog-shaped trees regardless of how
	// stale the stored data is.
	for i := range roles {
		roles[i].Permissions = access.Normalize(roles[i].Permissions)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": roles})
}

func (a *API) getRole(w http.ResponseWriter, r *http.Request, id string) {
	role, err := a.store.GetRole(r.Context(), id)
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	role.Permissions = access.Normalize(role.Permissions)
	writeJSON(w, http.StatusOK, role)
}

func (a *API) createRole(w http.ResponseWriter, r *http.Request, sess access.Session) {
	var req roleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	editor := access.NewEditor(sess, access.RoleDefinition{
		ID:        ids.New(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	editor.SetName(req.Name)
	editor.SetDescription(req.Description)
	if req.Permissions != nil {
		editor.ReplacePermissions(req.Permissions)
	}
	if err := editor.Save(r.Context(), a.store); err != nil {
		handleAccessError(w, r, err)
		return
	}

	role := editor.Role()
	w.Header().Set("Location", fmt.Sprintf("/v1/roles/%s", role.ID))
	writeJSON(w, http.StatusCreated, role)
}

func (a *API) updateRole(w http.ResponseWriter, r *http.Request, sess access.Session, id string) {
	var req roleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := a.store.GetRole(r.Context(), id)
	if err != nil {
		handleAccessError(w, r, err)
		return
	}

	editor := access.NewEditor(sess, existing)
	editor.SetName(req.Name)
	editor.SetDescription(req.Description)
	if req.Permissions != nil {
		editor.ReplacePermissions(req.Permissions)
	}
	if err := editor.Save(r.Context(), a.store); err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, editor.Role())
}

func (a *API) toggleRolePermissions(w http.ResponseWriter, r *http.Request, sess access.Session, id string) {
	var req toggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := a.store.GetRole(r.Context(), id)
	if err != nil {
		handleAccessError(w, r, err)
		return
	}

	editor := access.NewEditor(sess, existing)
	switch req.Op {
	case "cell":
		if !access.ValidFlag(access.Flag(req.Flag)) {
			writeError(w, r, http.StatusBadRequest, "unknown flag")
			return
		}
		editor.SetCell(req.Category, req.SubModule, access.Flag(req.Flag), req.Value)
	case "row":
		editor.SetRow(req.Category, req.SubModule, req.Value)
	case "category":
		editor.SetCategory(req.Category, req.Value)
	case "all":
		editor.SetAll(req.Value)
	default:
		writeError(w, r, http.StatusBadRequest, "unknown toggle op")
		return
	}
	if err := editor.Save(r.Context(), a.store); err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, editor.Role())
}

// handlePermissionQuery serves the full CRUD tuple for one sub-module,
// which pages use for field-level edit locks. The scope must be dotted;
// bare categories are a caller error here, not a lookup miss.
func (a *API) handlePermissionQuery(w http.ResponseWriter, r *http.Request, sess access.Session) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scope := r.URL.Query().Get("scope")
	category, subModule := access.ParseScope(scope)
	if category == "" || subModule == "" {
		writeError(w, r, http.StatusBadRequest, "scope must be of the form Category.SubModule")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":      scope,
		"permission": sess.Permission(category, subModule),
	})
}
