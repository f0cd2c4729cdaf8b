package authn

import (
	"errors"
	"testing"
	"time"

	"tallio.org/internal/access"
)

func withSecret(t *testing.T) {
	t.Helper()
	t.Setenv("TALLIO_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)
}

func TestGenerateAndValidate(t *testing.T) {
	withSecret(t)

	user := access.User{
		ID:                    "user-42",
		Name:                  "Dana",
		Email:                 "dana@example.com",
		Role:                  access.RoleAccountant,
		OrganizationIDs:       []string{"org-1", "org-2"},
		CurrentOrganizationID: "org-1",
	}
	token, err := GenerateToken(user, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	got := claims.User()
	if got.ID != "user-42" || got.Role != access.RoleAccountant {
		t.Fatalf("unexpected user from claims: %+v", got)
	}
	if got.CurrentOrganizationID != "org-1" || len(got.OrganizationIDs) != 2 {
		t.Fatalf("organization membership lost: %+v", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	withSecret(t)

	for _, token := range []string{"", "  ", "not-a-token", "a.b.c"} {
		if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestParseRejectsExpired(t *testing.T) {
	withSecret(t)

	user := access.User{ID: "user-1", Role: access.RoleStaff}
	token, err := GenerateToken(user, time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	t.Setenv("TALLIO_AUTH_SECRET", "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken(access.User{ID: "u", Role: access.RoleStaff}, time.Minute); err == nil {
		t.Fatal("expected error without configured secret")
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	withSecret(t)

	if _, err := GenerateToken(access.User{Role: access.RoleStaff}, time.Minute); err == nil {
		t.Fatal("expected error for empty user ID")
	}
	if _, err := GenerateToken(access.User{ID: "u", Role: access.RoleStaff}, 0); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}
