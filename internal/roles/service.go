package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service handles role business logic and guards the reserved
// Administrator role.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles with completed matrices.
func (s *Service) ListRoles(ctx context.Context, filters RoleListFilters) ([]Role, error) {
	roles, err := s.repo.ListRoles(ctx, filters)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Matrix = effectiveMatrix(roles[i])
	}
	return roles, nil
}

// GetRole fetches one role, its matrix completed.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	role, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return Role{}, err
	}
	role.Matrix = effectiveMatrix(role)
	return role, nil
}

// CreateRole inserts a new role. A missing matrix seeds from the empty
// all-denied table; the Administrator name is reserved.
func (s *Service) CreateRole(ctx context.Context, role Role) (Role, error) {
	role.Name = strings.TrimSpace(role.Name)
	role.Description = strings.TrimSpace(role.Description)
	if role.Name == "" {
		return Role{}, fmt.Errorf("%w: role name required", httpx.ErrValidation)
	}
	if role.Name == authz.AdministratorName {
		return Role{}, httpx.ErrReserved
	}
	if role.Matrix == nil {
		role.Matrix = authz.EmptyMatrix()
	} else {
		role.Matrix = authz.Complete(role.Matrix, false)
	}
	return s.repo.CreateRole(ctx, role)
}

// UpdateRole replaces a role's name, description and matrix. The
// Administrator role is never editable, and no role can be renamed to it.
func (s *Service) UpdateRole(ctx context.Context, role Role) (Role, error) {
	current, err := s.repo.GetRole(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	if current.IsReserved() {
		return Role{}, httpx.ErrReserved
	}
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return Role{}, fmt.Errorf("%w: role name required", httpx.ErrValidation)
	}
	if role.Name == authz.AdministratorName {
		return Role{}, httpx.ErrReserved
	}
	role.Matrix = authz.Complete(role.Matrix, false)
	return s.repo.UpdateRole(ctx, role)
}

// DeleteRole removes a role. The Administrator role is never deletable.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	current, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if current.IsReserved() {
		return httpx.ErrReserved
	}
	return s.repo.DeleteRole(ctx, id)
}

// RoleForUser resolves a user's effective authz role. It satisfies
// authz.RoleSource for the permission middleware and the auth handlers.
func (s *Service) RoleForUser(ctx context.Context, userID int64) (authz.Role, error) {
	name, matrix, err := s.repo.RoleNameForUser(ctx, userID)
	if err != nil {
		return authz.Role{}, err
	}
	return authz.RoleFor(name, matrix), nil
}

// CompleteStoredMatrices repairs persisted role matrices that predate a
// module or action being added to the enumerated sets. It returns how
// many roles were rewritten. Run periodically from the worker.
func (s *Service) CompleteStoredMatrices(ctx context.Context) (int, error) {
	roles, err := s.repo.ListRoles(ctx, RoleListFilters{})
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, role := range roles {
		if role.IsReserved() || matrixComplete(role.Matrix) {
			continue
		}
		role.Matrix = authz.Complete(role.Matrix, false)
		if _, err := s.repo.UpdateRole(ctx, role); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

func matrixComplete(matrix authz.Matrix) bool {
	for _, m := range authz.AllModules() {
		actions, ok := matrix[m]
		if !ok {
			return false
		}
		for _, a := range authz.AllActions() {
			if _, ok := actions[a]; !ok {
				return false
			}
		}
	}
	return true
}

func effectiveMatrix(role Role) authz.Matrix {
	if role.IsReserved() {
		return authz.AdminMatrix()
	}
	return authz.Complete(role.Matrix, false)
}
