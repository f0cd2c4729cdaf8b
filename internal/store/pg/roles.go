package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"tallio.org/internal/access"
)

const pgErrUniqueViolation = "23505"

var _ access.RoleStore = (*Store)(nil)

// Store persists role definitions in PostgreSQL. The permission matrix
// is stored as a JSONB document and written verbatim; structural
// reconciliation against the catalog happens in the access package on
// read, so stored trees may lag behind catalog versions without
// breaking anything here.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListRoles(ctx context.Context) ([]access.RoleDefinition, error) {
	if s.db == nil {
		return nil, errors.New("database connection unavailable")
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, description, permissions, created_at, updated_at
		from role_definitions
		order by (id = $1) desc, created_at, id
	`, access.RootRoleID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []access.RoleDefinition
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

func (s *Store) GetRole(ctx context.Context, id string) (access.RoleDefinition, error) {
	if s.db == nil {
		return access.RoleDefinition{}, errors.New("database connection unavailable")
	}
	row := s.db.QueryRowContext(ctx, `
		select id, name, description, permissions, created_at, updated_at
		from role_definitions
		where id = $1
	`, id)
	role, err := scanRole(row)
	if errors.Is(err, sql.ErrNoRows) {
		return access.RoleDefinition{}, fmt.Errorf("%w: %s", access.ErrNotFound, id)
	}
	return role, err
}

func (s *Store) UpsertRole(ctx context.Context, role access.RoleDefinition) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	if strings.TrimSpace(role.ID) == "" {
		return fmt.Errorf("%w: role ID is required", access.ErrInvalidInput)
	}
	if strings.TrimSpace(role.Name) == "" {
		return fmt.Errorf("%w: role name is required", access.ErrInvalidInput)
	}
	perms, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		insert into role_definitions (id, name, description, permissions, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6)
		on conflict (id) do update set
			name = excluded.name,
			description = excluded.description,
			permissions = excluded.permissions,
			updated_at = excluded.updated_at
	`, role.ID, role.Name, role.Description, perms, role.CreatedAt, role.UpdatedAt)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
		return access.ErrConflict
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (access.RoleDefinition, error) {
	var (
		role     access.RoleDefinition
		rawPerms []byte
	)
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &rawPerms, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return access.RoleDefinition{}, err
	}
	role.Permissions = access.PermissionTree{}
	if len(rawPerms) > 0 {
		if err := json.Unmarshal(rawPerms, &role.Permissions); err != nil {
			return access.RoleDefinition{}, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return role, nil
}

func maybePgError(err error) (*pgconn.PgError, bool) {
	if err == nil {
		return nil, false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
