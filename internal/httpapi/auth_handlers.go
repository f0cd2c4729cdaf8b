package httpapi

import (
	"net/http"
	"strings"
	"time"

	"tallio.org/internal/access"
	"tallio.org/internal/authn"
)

type tokenRequest struct {
	UserID                string   `json:"user_id"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Role                  string   `json:"role"`
	OrganizationIDs       []string `json:"organization_ids"`
	CurrentOrganizationID string   `json:"current_organization_id"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

const tokenTTL = 15 * time.Minute

// handleAuthToken mints a session token. It stands in for the external
// auth collaborator; real deployments terminate login elsewhere and
// hand this service a verified token.
func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}
	kind, ok := access.ParseRoleKind(strings.TrimSpace(req.Role))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown role")
		return
	}

	user := access.User{
		ID:                    req.UserID,
		Name:                  strings.TrimSpace(req.Name),
		Email:                 strings.TrimSpace(req.Email),
		Role:                  kind,
		OrganizationIDs:       req.OrganizationIDs,
		CurrentOrganizationID: strings.TrimSpace(req.CurrentOrganizationID),
	}
	token, err := authn.GenerateToken(user, tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(tokenTTL),
	})
}
