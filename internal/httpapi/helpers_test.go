package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tallio.org/internal/access"
	"tallio.org/internal/authn"
	"tallio.org/internal/store/memory"
)

type testAPI struct {
	t     *testing.T
	srv   *httptest.Server
	store *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	t.Setenv("TALLIO_AUTH_SECRET", "test-secret")
	authn.ResetSecretForTests()
	t.Cleanup(authn.ResetSecretForTests)

	store := memory.New()
	if err := access.Seed(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	api := New(store, ReadyProbe{}, "test")
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv, store: store}
}

func (a *testAPI) token(kind access.RoleKind) string {
	a.t.Helper()
	token, err := authn.GenerateToken(access.User{
		ID:   "user-" + string(kind),
		Name: "Test " + string(kind),
		Role: kind,
	}, time.Hour)
	if err != nil {
		a.t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func (a *testAPI) do(method, path, token string, body any) *http.Response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	if err != nil {
		a.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.srv.Client().Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
