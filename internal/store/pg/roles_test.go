package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tallio.org/internal/access"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func roleColumns() []string {
	return []string{"id", "name", "description", "permissions", "created_at", "updated_at"}
}

func TestListRoles(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	perms, _ := json.Marshal(access.PermissionTree{
		access.CategorySales: {"Invoice": {Read: true}},
	})
	rows := sqlmock.NewRows(roleColumns()).
		AddRow(access.RootRoleID(), "Super Admin", "", []byte(`{}`), now, now).
		AddRow("role-ops", "Operations", "Warehouse crew", perms, now, now)

	mock.ExpectQuery("select id, name, description, permissions, created_at, updated_at.*from role_definitions").
		WithArgs(access.RootRoleID()).
		WillReturnRows(rows)

	roles, err := store.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(roles) != 2 || roles[0].ID != access.RootRoleID() {
		t.Fatalf("unexpected roles: %+v", roles)
	}
	if !roles[1].Permissions[access.CategorySales]["Invoice"].Read {
		t.Fatal("permissions JSON not decoded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRoleNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select id, name, description, permissions, created_at, updated_at.*from role_definitions.*where id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.GetRole(context.Background(), "ghost"); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertRole(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	role := access.RoleDefinition{
		ID:   "role-ops",
		Name: "Operations",
		Permissions: access.PermissionTree{
			access.CategoryInventory: {"Stock": {Read: true, Write: true}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	mock.ExpectExec("insert into role_definitions.*on conflict \\(id\\) do update").
		WithArgs(role.ID, role.Name, role.Description, sqlmock.AnyArg(), role.CreatedAt, role.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.UpsertRole(context.Background(), role); err != nil {
		t.Fatalf("UpsertRole: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertRoleValidation(t *testing.T) {
	store, _ := newMockStore(t)
	ctx := context.Background()

	if err := store.UpsertRole(ctx, access.RoleDefinition{Name: "No ID"}); !errors.Is(err, access.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing ID, got %v", err)
	}
	if err := store.UpsertRole(ctx, access.RoleDefinition{ID: "r1"}); !errors.Is(err, access.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
}
