package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryRoleRepo struct {
	roles  map[int64]Role
	users  map[int64]int64
	nextID int64
}

func newMemoryRoleRepo() *memoryRoleRepo {
	return &memoryRoleRepo{roles: make(map[int64]Role), users: make(map[int64]int64)}
}

func (r *memoryRoleRepo) ListRoles(ctx context.Context, filters RoleListFilters) ([]Role, error) {
	var out []Role
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memoryRoleRepo) GetRole(ctx context.Context, id int64) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, httpx.ErrNotFound
	}
	return role, nil
}

func (r *memoryRoleRepo) GetRoleByName(ctx context.Context, name string) (Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, httpx.ErrNotFound
}

func (r *memoryRoleRepo) RoleNameForUser(ctx context.Context, userID int64) (string, authz.Matrix, error) {
	roleID, ok := r.users[userID]
	if !ok {
		return "", nil, httpx.ErrNotFound
	}
	role := r.roles[roleID]
	return role.Name, role.Matrix, nil
}

func (r *memoryRoleRepo) CreateRole(ctx context.Context, role Role) (Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return Role{}, httpx.ErrDuplicate
		}
	}
	r.nextID++
	role.ID = r.nextID
	r.roles[role.ID] = role
	return role, nil
}

func (r *memoryRoleRepo) UpdateRole(ctx context.Context, role Role) (Role, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return Role{}, httpx.ErrNotFound
	}
	r.roles[role.ID] = role
	return role, nil
}

func (r *memoryRoleRepo) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func seedAdmin(repo *memoryRoleRepo) Role {
	admin, _ := repo.CreateRole(context.Background(), Role{Name: authz.AdministratorName})
	return admin
}

func TestAdministratorRoleIsImmutable(t *testing.T) {
	repo := newMemoryRoleRepo()
	admin := seedAdmin(repo)
	svc := NewService(repo)

	_, err := svc.UpdateRole(context.Background(), Role{ID: admin.ID, Name: "Renamed"})
	require.ErrorIs(t, err, httpx.ErrReserved)

	err = svc.DeleteRole(context.Background(), admin.ID)
	require.ErrorIs(t, err, httpx.ErrReserved)

	_, err = svc.CreateRole(context.Background(), Role{Name: authz.AdministratorName})
	require.ErrorIs(t, err, httpx.ErrReserved)
}

func TestCannotRenameOntoAdministrator(t *testing.T) {
	repo := newMemoryRoleRepo()
	seedAdmin(repo)
	svc := NewService(repo)

	viewer, err := svc.CreateRole(context.Background(), Role{Name: "Viewer"})
	require.NoError(t, err)

	_, err = svc.UpdateRole(context.Background(), Role{ID: viewer.ID, Name: authz.AdministratorName})
	require.ErrorIs(t, err, httpx.ErrReserved)
}

func TestCreateSeedsEmptyMatrixAndCompletesPartial(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)

	created, err := svc.CreateRole(context.Background(), Role{Name: "Viewer"})
	require.NoError(t, err)
	require.Len(t, created.Matrix, len(authz.AllModules()))
	require.False(t, created.Matrix[authz.ModuleRoles][authz.ActionView])

	partial, err := svc.CreateRole(context.Background(), Role{
		Name:   "Clerk",
		Matrix: authz.Matrix{authz.ModuleDonations: {authz.ActionView: true}},
	})
	require.NoError(t, err)
	require.True(t, partial.Matrix[authz.ModuleDonations][authz.ActionView])
	require.Len(t, partial.Matrix, len(authz.AllModules()))
}

func TestGetRoleCompletesStoredMatrix(t *testing.T) {
	repo := newMemoryRoleRepo()
	repo.nextID++
	repo.roles[1] = Role{ID: 1, Name: "Legacy", Matrix: authz.Matrix{authz.ModuleEvents: {authz.ActionView: true}}}
	svc := NewService(repo)

	role, err := svc.GetRole(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, role.Matrix, len(authz.AllModules()))
	require.True(t, role.Matrix[authz.ModuleEvents][authz.ActionView])
	require.False(t, role.Matrix[authz.ModuleEvents][authz.ActionDelete])
}

func TestRoleForUserResolvesWildcard(t *testing.T) {
	repo := newMemoryRoleRepo()
	admin := seedAdmin(repo)
	repo.users[7] = admin.ID
	svc := NewService(repo)

	role, err := svc.RoleForUser(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, role.IsAdministrator())
	require.True(t, role.HasPermission(authz.ModulePurchases, authz.ActionDelete))

	_, err = svc.RoleForUser(context.Background(), 99)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
