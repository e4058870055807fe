package authz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminAndEmptyMatrixShape(t *testing.T) {
	admin := AdminMatrix()
	empty := EmptyMatrix()
	require.Len(t, admin, len(AllModules()))
	require.Len(t, empty, len(AllModules()))
	for _, m := range AllModules() {
		for _, a := range AllActions() {
			require.True(t, admin[m][a])
			require.False(t, empty[m][a])
		}
	}
}

func TestCompleteIsAdditive(t *testing.T) {
	partial := Matrix{
		ModuleRoles:  {ActionView: true, ActionEdit: false},
		ModuleEvents: {ActionDelete: true},
	}
	completed := Complete(partial, false)

	// Existing entries survive untouched.
	require.True(t, completed[ModuleRoles][ActionView])
	require.False(t, completed[ModuleRoles][ActionEdit])
	require.True(t, completed[ModuleEvents][ActionDelete])

	// Every enumerated key is now present.
	for _, m := range AllModules() {
		require.Len(t, completed[m], len(AllActions()))
	}

	// The input is not mutated.
	require.Len(t, partial[ModuleRoles], 2)
	require.Len(t, partial, 2)
}

func TestCompleteDefaultTrueDoesNotOverwrite(t *testing.T) {
	partial := Matrix{ModuleRoles: {ActionView: false}}
	completed := Complete(partial, true)
	require.False(t, completed[ModuleRoles][ActionView])
	require.True(t, completed[ModuleRoles][ActionEdit])
}

func TestValidateStructure(t *testing.T) {
	var full map[string]map[string]any
	data, err := json.Marshal(AdminMatrix())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &full))
	require.True(t, ValidateStructure(full))

	// Missing module.
	delete(full, string(ModuleRoles))
	require.False(t, ValidateStructure(full))

	// Missing action.
	var partial map[string]map[string]any
	data, err = json.Marshal(EmptyMatrix())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &partial))
	delete(partial[string(ModuleEvents)], string(ActionDelete))
	require.False(t, ValidateStructure(partial))

	// Non-boolean grant.
	var typed map[string]map[string]any
	data, err = json.Marshal(EmptyMatrix())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &typed))
	typed[string(ModuleUsers)][string(ActionView)] = "yes"
	require.False(t, ValidateStructure(typed))

	require.False(t, ValidateStructure(nil))
}

func TestMatrixFromRawDropsUnknownAndNonBool(t *testing.T) {
	raw := map[string]map[string]any{
		string(ModuleRoles): {
			string(ActionView): true,
			"Annihilate":       true,
			string(ActionEdit): "yes",
		},
		"bogusModule": {string(ActionView): true},
	}
	m := MatrixFromRaw(raw)
	require.Len(t, m, 1)
	require.True(t, m[ModuleRoles].Granted(ActionView))
	require.False(t, m[ModuleRoles].Granted(ActionEdit))
}
