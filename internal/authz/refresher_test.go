package authz

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu      sync.Mutex
	role    string
	matrix  Matrix
	fetches int
	block   chan struct{}
}

func (s *stubSource) FetchPermissions(ctx context.Context) (string, Matrix, error) {
	s.mu.Lock()
	s.fetches++
	role, matrix, block := s.role, s.matrix, s.block
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}
	return role, matrix, nil
}

func TestStateDeniesWhenCleared(t *testing.T) {
	state := NewState()
	require.False(t, state.HasPermission(ModuleRoles, ActionView))
	require.Nil(t, state.AccessibleModules())

	state.SetUserPermissions("Viewer", Matrix{ModuleRoles: {ActionView: true}})
	require.True(t, state.HasPermission(ModuleRoles, ActionView))

	state.Clear()
	require.False(t, state.HasPermission(ModuleRoles, ActionView))
	require.False(t, state.HasModuleAccess(ModuleRoles))
	require.Nil(t, state.ModulePermissions(ModuleRoles))
	require.False(t, state.HasAll([]Check{{ModuleRoles, ActionView}}))
	require.False(t, state.HasAny([]Check{{ModuleRoles, ActionView}}))
}

func TestRefresherAppliesInitialFetch(t *testing.T) {
	state := NewState()
	src := &stubSource{role: "Viewer", matrix: Matrix{ModuleRoles: {ActionView: true}}}
	ref := NewRefresher(state, src, time.Hour, nil)
	ref.Start(context.Background())
	defer ref.Stop()

	require.Eventually(t, func() bool {
		return state.HasPermission(ModuleRoles, ActionView)
	}, time.Second, 5*time.Millisecond)
}

func TestStopClearsAndDiscardsLateResult(t *testing.T) {
	state := NewState()
	state.SetUserPermissions("Viewer", Matrix{ModuleRoles: {ActionView: true}})

	src := &stubSource{role: "Viewer", matrix: Matrix{ModuleRoles: {ActionView: true}}}
	ref := NewRefresher(state, src, time.Hour, nil)

	// Simulate a fetch completing after Stop: apply must be a no-op.
	ref.Stop()
	require.False(t, state.HasPermission(ModuleRoles, ActionView))

	ref.apply("Viewer", Matrix{ModuleRoles: {ActionView: true}})
	require.False(t, state.HasPermission(ModuleRoles, ActionView))
	_, set := state.Role()
	require.False(t, set)
}

func TestStopInterruptsInFlightFetch(t *testing.T) {
	state := NewState()
	src := &stubSource{
		role:   "Viewer",
		matrix: Matrix{ModuleRoles: {ActionView: true}},
		block:  make(chan struct{}),
	}
	ref := NewRefresher(state, src, time.Hour, nil)
	ref.Start(context.Background())

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.fetches > 0
	}, time.Second, 5*time.Millisecond)

	ref.Stop()
	require.False(t, state.HasPermission(ModuleRoles, ActionView))
}
