package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailClosedOnMissingEntries(t *testing.T) {
	role := RoleFor("Viewer", Matrix{
		ModuleRoles: {ActionView: true},
	})

	require.False(t, role.HasPermission(ModuleRoles, ActionEdit))
	require.False(t, role.HasPermission(ModuleRoles, ActionDelete))
	require.False(t, role.HasPermission(ModuleEvents, ActionView))
	require.False(t, role.HasPermission(Module("bogus"), ActionView))
	require.False(t, role.HasPermission(ModuleRoles, Action("Annihilate")))
}

func TestAdministratorWildcard(t *testing.T) {
	for _, matrix := range []Matrix{nil, EmptyMatrix(), {ModuleRoles: {ActionView: false}}} {
		role := RoleFor(AdministratorName, matrix)
		require.True(t, role.IsAdministrator())
		for _, m := range AllModules() {
			for _, a := range AllActions() {
				require.True(t, role.HasPermission(m, a), "%s/%s", m, a)
			}
		}
		require.Len(t, role.AccessibleModules(), len(AllModules()))
	}
}

func TestAdministratorUnknownKeysStillDenied(t *testing.T) {
	role := AdministratorRole()
	require.False(t, role.HasPermission(Module("bogus"), ActionView))
	require.False(t, role.HasPermission(ModuleRoles, Action("bogus")))
}

func TestModuleAccessImpliesAnyAction(t *testing.T) {
	role := RoleFor("Viewer", Matrix{
		ModuleRoles:  {ActionView: true},
		ModuleEvents: {ActionView: false, ActionCreate: false},
	})

	require.True(t, role.HasModuleAccess(ModuleRoles))
	require.False(t, role.HasModuleAccess(ModuleEvents))
	require.False(t, role.HasModuleAccess(ModuleDonations))

	for _, m := range AllModules() {
		any := false
		for _, a := range AllActions() {
			if role.HasPermission(m, a) {
				any = true
			}
		}
		require.Equal(t, any, role.HasModuleAccess(m), "module %s", m)
	}
}

func TestEmptyMatrixViewerDeniedEverywhere(t *testing.T) {
	role := RoleFor("Viewer", Matrix{})

	require.False(t, role.HasPermission(ModuleRoles, ActionDelete))
	require.Empty(t, role.AccessibleModules())
}

func TestSingleGrantViewer(t *testing.T) {
	role := RoleFor("Viewer", Matrix{ModuleRoles: {ActionView: true}})

	require.True(t, role.HasModuleAccess(ModuleRoles))
	require.False(t, role.HasPermission(ModuleRoles, ActionEdit))
	require.Equal(t, []Module{ModuleRoles}, role.AccessibleModules())
}

func TestHasAllHasAny(t *testing.T) {
	role := RoleFor("Clerk", Matrix{
		ModuleDonations: {ActionView: true, ActionCreate: true},
		ModuleDonors:    {ActionView: true},
	})

	require.True(t, role.HasAll([]Check{
		{ModuleDonations, ActionView},
		{ModuleDonors, ActionView},
	}))
	require.False(t, role.HasAll([]Check{
		{ModuleDonations, ActionView},
		{ModuleDonors, ActionEdit},
	}))
	require.True(t, role.HasAny([]Check{
		{ModuleEvents, ActionView},
		{ModuleDonations, ActionCreate},
	}))
	require.False(t, role.HasAny([]Check{
		{ModuleEvents, ActionView},
		{ModulePurchases, ActionDelete},
	}))
}

func TestModulePermissions(t *testing.T) {
	stored := ActionMap{ActionView: true}
	role := RoleFor("Viewer", Matrix{ModuleRoles: stored})

	require.Equal(t, stored, role.ModulePermissions(ModuleRoles))
	require.Nil(t, role.ModulePermissions(ModuleEvents))

	admin := AdministratorRole()
	am := admin.ModulePermissions(ModuleEvents)
	for _, a := range AllActions() {
		require.True(t, am.Granted(a))
	}
}
