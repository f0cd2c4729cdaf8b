// Package migrate applies the role store schema migrations embedded
// in the binary.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

//go:embed sql/*.sql
var migrationFS embed.FS

const migrationsTable = "schema_migrations"

// Runner tracks applied migrations in a bookkeeping table and applies
// pending ones in lexical order, each inside its own transaction.
type Runner struct {
	db *sql.DB
}

func New(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Up applies all pending migrations.
func (r *Runner) Up(ctx context.Context) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	applied, err := r.appliedSet(ctx)
	if err != nil {
		return err
	}
	for _, name := range migrationNames() {
		if applied[name] {
			continue
		}
		if err := r.exec(ctx, name); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if err := r.record(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Down rolls back the most recently applied migration.
func (r *Runner) Down(ctx context.Context) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	history, err := r.Applied(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return errors.New("no migrations applied")
	}
	last := history[len(history)-1]
	down := strings.TrimSuffix(last, ".up.sql") + ".down.sql"
	if _, err := migrationFS.ReadFile("sql/" + down); err != nil {
		return fmt.Errorf("missing down migration for %s", last)
	}
	if err := r.exec(ctx, down); err != nil {
		return fmt.Errorf("rollback migration %s: %w", last, err)
	}
	_, err = r.db.ExecContext(ctx, `delete from `+migrationsTable+` where name = $1`, last)
	return err
}

// Applied returns migration names in the order they were applied.
func (r *Runner) Applied(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `select name from `+migrationsTable+` order by applied_at asc, name asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var history []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		history = append(history, name)
	}
	return history, rows.Err()
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		create table if not exists `+migrationsTable+` (
			name       text primary key,
			applied_at timestamptz not null default now()
		)
	`)
	return err
}

func (r *Runner) appliedSet(ctx context.Context) (map[string]bool, error) {
	history, err := r.Applied(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(history))
	for _, name := range history {
		applied[name] = true
	}
	return applied, nil
}

func (r *Runner) exec(ctx context.Context, name string) error {
	raw, err := migrationFS.ReadFile("sql/" + name)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range splitStatements(string(raw)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Runner) record(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `insert into `+migrationsTable+`(name, applied_at) values ($1, $2)`,
		name, time.Now().UTC())
	return err
}

// migrationNames lists embedded up migrations in lexical order.
func migrationNames() []string {
	entries, err := migrationFS.ReadDir("sql")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// splitStatements splits on semicolons outside single-quoted strings.
func splitStatements(raw string) []string {
	var (
		stmts    []string
		current  strings.Builder
		inString bool
	)
	for _, r := range raw {
		current.WriteRune(r)
		switch r {
		case '\'':
			inString = !inString
		case ';':
			if !inString {
				stmts = append(stmts, current.String())
				current.Reset()
			}
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		stmts = append(stmts, current.String())
	}
	return stmts
}
