package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tallio.org/internal/access"
	"tallio.org/internal/authn"
	"tallio.org/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
	loginPath  = "/v1/auth/token"
)

// withAuth resolves the bearer token, if any, into the current user.
// Requests without a token continue anonymously; the route guard
// decides whether anonymous access is acceptable. A present-but-invalid
// token is rejected outright.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get(authHeader))
		if header == "" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}
		claims, err := authn.ParseAndValidate(token)
		if err != nil {
			if errors.Is(err, authn.ErrInvalidToken) {
				writeError(w, r, http.StatusUnauthorized, "invalid token")
			} else {
				writeError(w, r, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		ctx := authn.ContextWithUser(r.Context(), claims.User())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// guardedHandler receives the session the guard already resolved, so
// handlers never reach for ambient permission state.
type guardedHandler func(http.ResponseWriter, *http.Request, access.Session)

// routePolicy is what a protected route declares: an optional explicit
// role allow-list and an optional permission scope.
type routePolicy struct {
	roles []access.RoleKind
	scope string
}

// guard admits a request in two ordered gates: authenticated, then
// authorized (role allow-list before permission scope). Denials carry
// the reason; unauthenticated requests are pointed at the login path
// with the attempted location echoed back for post-login return.
func (a *API) guard(policy routePolicy, next guardedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.session(r)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "role store unavailable")
			return
		}

		if sess.User == nil {
			obs.ObserveDecision(policy.scope, false)
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error": "authentication required",
				"login": loginPath,
				"from":  r.URL.RequestURI(),
			})
			return
		}
		if len(policy.roles) > 0 && !sess.HasRole(policy.roles...) {
			obs.ObserveDecision(policy.scope, false)
			writeError(w, r, http.StatusForbidden, "requires one of roles: "+joinRoleKinds(policy.roles))
			return
		}
		if policy.scope != "" && !sess.HasModuleAccess(policy.scope) {
			obs.ObserveDecision(policy.scope, false)
			writeError(w, r, http.StatusForbidden, fmt.Sprintf("requires access to %s", policy.scope))
			return
		}

		obs.ObserveDecision(policy.scope, true)
		next(w, r, sess)
	}
}

// session builds the per-request evaluation context: the current user
// from the auth boundary plus the role definitions as stored right now.
func (a *API) session(r *http.Request) (access.Session, error) {
	roles, err := a.store.ListRoles(r.Context())
	if err != nil {
		return access.Session{}, err
	}
	return access.Session{User: authn.UserFromContext(r.Context()), Roles: roles}, nil
}

func extractBearerToken(header string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func joinRoleKinds(kinds []access.RoleKind) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return strings.Join(names, ", ")
}
