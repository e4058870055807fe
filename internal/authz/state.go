package authz

import "sync"

// State holds one authenticated session's role and matrix. It is the
// client-side counterpart of the server's per-request role resolution:
// a consumer that logs in once and polls /permissions keeps its snapshot
// here. The API server itself resolves roles through Middleware on every
// request and does not hold a State. Populated on login, replaced
// wholesale by each refresh, cleared on logout. Queries on a cleared
// state deny rather than fail.
type State struct {
	mu   sync.RWMutex
	role Role
	set  bool
}

// NewState returns an empty, denying state.
func NewState() *State {
	return &State{}
}

// SetUserPermissions replaces the current role and matrix. Called once per
// authentication event before any query, and again on every refresh.
func (s *State) SetUserPermissions(roleName string, matrix Matrix) {
	role := RoleFor(roleName, matrix)
	s.mu.Lock()
	s.role = role
	s.set = true
	s.mu.Unlock()
}

// Clear resets the state; subsequent queries behave as "no access".
func (s *State) Clear() {
	s.mu.Lock()
	s.role = Role{}
	s.set = false
	s.mu.Unlock()
}

// Role returns the current role and whether one is set.
func (s *State) Role() (Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role, s.set
}

// HasPermission answers the per-action query against the current role,
// denying when no role is set.
func (s *State) HasPermission(m Module, a Action) bool {
	role, ok := s.Role()
	if !ok {
		return false
	}
	return role.HasPermission(m, a)
}

// HasModuleAccess answers module visibility against the current role.
func (s *State) HasModuleAccess(m Module) bool {
	role, ok := s.Role()
	if !ok {
		return false
	}
	return role.HasModuleAccess(m)
}

// AccessibleModules lists visible modules for the current role.
func (s *State) AccessibleModules() []Module {
	role, ok := s.Role()
	if !ok {
		return nil
	}
	return role.AccessibleModules()
}

// ModulePermissions returns the current role's action map for a module.
func (s *State) ModulePermissions(m Module) ActionMap {
	role, ok := s.Role()
	if !ok {
		return nil
	}
	return role.ModulePermissions(m)
}

// HasAll reports whether every check passes for the current role.
func (s *State) HasAll(checks []Check) bool {
	role, ok := s.Role()
	if !ok {
		return false
	}
	return role.HasAll(checks)
}

// HasAny reports whether any check passes for the current role.
func (s *State) HasAny(checks []Check) bool {
	role, ok := s.Role()
	if !ok {
		return false
	}
	return role.HasAny(checks)
}
