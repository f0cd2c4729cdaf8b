package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"tallio.org/internal/access"
	"tallio.org/internal/obs"
)

// ReadyProbe reports whether the backing store is reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP surface of the access engine: the route guard, the
// navigation feed, and the role editor endpoints. Every protected route
// goes through the same guard, and the navigation feed uses the same
// predicate, so what the menu shows and what a direct URL reaches never
// diverge.
type API struct {
	mux        *http.ServeMux
	store      access.RoleStore
	readyProbe ReadyProbe
	version    string
}

func New(store access.RoleStore, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		store:      store,
		readyProbe: rp,
		version:    version,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/v1/auth/token", a.handleAuthToken)

	a.mux.HandleFunc("/v1/navigation", a.guard(routePolicy{}, a.handleNavigation))
	a.mux.HandleFunc("/v1/permissions", a.guard(routePolicy{}, a.handlePermissionQuery))

	a.mux.HandleFunc("/v1/roles", a.guard(routePolicy{scope: access.ScopeRoleSettings}, a.handleRolesCollection))
	a.mux.HandleFunc("/v1/roles/", a.guard(routePolicy{scope: access.ScopeRoleSettings}, a.handleRoleResource))

	// Every navigation entry doubles as a guarded module page, wired
	// from the same table the menu is filtered by.
	for _, entry := range navTree {
		entry := entry
		a.mux.HandleFunc(entry.item.Path, a.guard(routePolicy{roles: entry.roles, scope: entry.item.Scope}, a.handleModulePage(entry.item)))
	}

	// Unknown paths get a JSON 404, never a blank response.
	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "resource not found")
	})

	return a
}

// Handler assembles the middleware chain around the router.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 20, 10)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
