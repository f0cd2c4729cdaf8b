package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tallio.org/internal/access"
)

var _ access.RoleStore = (*Store)(nil)

// Store keeps role definitions in memory. It backs DSN-less development
// runs and tests; the single-process last-write-wins semantics match
// the engine's concurrency model.
type Store struct {
	mu    sync.RWMutex
	order []string
	roles map[string]access.RoleDefinition
}

func New() *Store {
	return &Store{roles: make(map[string]access.RoleDefinition)}
}

func (s *Store) ListRoles(ctx context.Context) ([]access.RoleDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]access.RoleDefinition, 0, len(s.order))
	rootID := access.RootRoleID()
	if role, ok := s.roles[rootID]; ok {
		out = append(out, cloneRole(role))
	}
	for _, id := range s.order {
		if id == rootID {
			continue
		}
		out = append(out, cloneRole(s.roles[id]))
	}
	return out, nil
}

func (s *Store) GetRole(ctx context.Context, id string) (access.RoleDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return access.RoleDefinition{}, fmt.Errorf("%w: %s", access.ErrNotFound, id)
	}
	return cloneRole(role), nil
}

func (s *Store) UpsertRole(ctx context.Context, role access.RoleDefinition) error {
	if strings.TrimSpace(role.ID) == "" {
		return fmt.Errorf("%w: role ID is required", access.ErrInvalidInput)
	}
	if strings.TrimSpace(role.Name) == "" {
		return fmt.Errorf("%w: role name is required", access.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[role.ID]; !ok {
		s.order = append(s.order, role.ID)
	}
	s.roles[role.ID] = cloneRole(role)
	return nil
}

func cloneRole(role access.RoleDefinition) access.RoleDefinition {
	role.Permissions = role.Permissions.Clone()
	return role
}
