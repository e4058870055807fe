package authz

// AdministratorName is the reserved role name whose effective permissions
// are all modules, all actions, regardless of any stored matrix.
const AdministratorName = "Administrator"

// Role is a tagged variant: either the Administrator wildcard or a standard
// role carrying its permission matrix. All permission queries dispatch on
// the variant here, so admin detection lives in exactly one place.
type Role struct {
	name   string
	admin  bool
	matrix Matrix
}

// Check pairs a module with an action for batch permission queries.
type Check struct {
	Module Module
	Action Action
}

// RoleFor builds a Role from a name and matrix. The Administrator name
// yields the wildcard variant; the matrix is ignored for it.
func RoleFor(name string, matrix Matrix) Role {
	if name == AdministratorName {
		return Role{name: name, admin: true}
	}
	return Role{name: name, matrix: matrix.Clone()}
}

// AdministratorRole returns the wildcard variant.
func AdministratorRole() Role {
	return Role{name: AdministratorName, admin: true}
}

// Name returns the role name.
func (r Role) Name() string { return r.name }

// IsAdministrator reports whether this is the wildcard variant.
func (r Role) IsAdministrator() bool { return r.admin }

// HasPermission answers whether the role may perform action a on module m.
// Unknown modules or actions and missing matrix entries resolve to false;
// an incomplete or buggy matrix never grants access by default.
func (r Role) HasPermission(m Module, a Action) bool {
	if !m.IsValid() || !a.IsValid() {
		return false
	}
	if r.admin {
		return true
	}
	return r.matrix[m].Granted(a)
}

// HasModuleAccess reports whether the role holds at least one grant under
// the module; any permission implies visibility.
func (r Role) HasModuleAccess(m Module) bool {
	if !m.IsValid() {
		return false
	}
	if r.admin {
		return true
	}
	for _, a := range allActions {
		if r.matrix[m].Granted(a) {
			return true
		}
	}
	return false
}

// AccessibleModules returns the modules the role can see at all, in the
// enumeration order.
func (r Role) AccessibleModules() []Module {
	if r.admin {
		return AllModules()
	}
	var out []Module
	for _, m := range allModules {
		if r.HasModuleAccess(m) {
			out = append(out, m)
		}
	}
	return out
}

// ModulePermissions returns the action map for a module: all granted for
// the administrator, otherwise the stored entries as-is (possibly
// incomplete or empty).
func (r Role) ModulePermissions(m Module) ActionMap {
	if r.admin {
		am := make(ActionMap, len(allActions))
		for _, a := range allActions {
			am[a] = true
		}
		return am
	}
	return r.matrix[m].Clone()
}

// HasAll reports whether every check passes.
func (r Role) HasAll(checks []Check) bool {
	for _, c := range checks {
		if !r.HasPermission(c.Module, c.Action) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one check passes.
func (r Role) HasAny(checks []Check) bool {
	for _, c := range checks {
		if r.HasPermission(c.Module, c.Action) {
			return true
		}
	}
	return false
}

// EffectiveMatrix materializes the role's grants as a complete matrix.
func (r Role) EffectiveMatrix() Matrix {
	if r.admin {
		return AdminMatrix()
	}
	return Complete(r.matrix, false)
}
