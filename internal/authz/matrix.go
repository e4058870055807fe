package authz

// ActionMap maps actions to granted flags for a single module. A missing
// entry means denied.
type ActionMap map[Action]bool

// Matrix is the full module/action grant table for a role.
type Matrix map[Module]ActionMap

// Granted reports the stored flag, defaulting to false for absent keys.
func (am ActionMap) Granted(a Action) bool {
	if am == nil {
		return false
	}
	return am[a]
}

// Clone returns a deep copy of the action map.
func (am ActionMap) Clone() ActionMap {
	if am == nil {
		return nil
	}
	out := make(ActionMap, len(am))
	for a, v := range am {
		out[a] = v
	}
	return out
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for mod, am := range m {
		out[mod] = am.Clone()
	}
	return out
}

// AdminMatrix builds an explicit all-granted matrix. Only needed when an
// administrator matrix is displayed or edited; the wildcard bypass in Role
// does not consult it.
func AdminMatrix() Matrix {
	return uniformMatrix(true)
}

// EmptyMatrix builds an all-denied matrix, the seed for a new role.
func EmptyMatrix() Matrix {
	return uniformMatrix(false)
}

func uniformMatrix(granted bool) Matrix {
	m := make(Matrix, len(allModules))
	for _, mod := range allModules {
		am := make(ActionMap, len(allActions))
		for _, a := range allActions {
			am[a] = granted
		}
		m[mod] = am
	}
	return m
}

// Complete fills any missing module or action entry in partial with def
// without discarding or overwriting keys already present. It guards against
// matrices persisted before a module or action was added to the enumerated
// sets.
func Complete(partial Matrix, def bool) Matrix {
	out := make(Matrix, len(allModules))
	for mod, am := range partial {
		out[mod] = am.Clone()
	}
	for _, mod := range allModules {
		am, ok := out[mod]
		if !ok {
			am = make(ActionMap, len(allActions))
			out[mod] = am
		}
		for _, a := range allActions {
			if _, ok := am[a]; !ok {
				am[a] = def
			}
		}
	}
	return out
}

// ValidateStructure reports whether a decoded, externally-supplied matrix
// carries every enumerated module, every enumerated action under each, and
// strictly boolean grant values. Used as a guard before trusting matrices
// loaded from storage or the network.
func ValidateStructure(raw map[string]map[string]any) bool {
	if raw == nil {
		return false
	}
	for _, mod := range allModules {
		actions, ok := raw[string(mod)]
		if !ok {
			return false
		}
		for _, a := range allActions {
			value, ok := actions[string(a)]
			if !ok {
				return false
			}
			if _, ok := value.(bool); !ok {
				return false
			}
		}
	}
	return true
}

// MatrixFromRaw converts a decoded JSON grant table into a typed Matrix,
// keeping only enumerated keys with boolean values.
func MatrixFromRaw(raw map[string]map[string]any) Matrix {
	m := make(Matrix, len(raw))
	for modName, actions := range raw {
		mod := Module(modName)
		if !mod.IsValid() {
			continue
		}
		am := make(ActionMap, len(actions))
		for actName, value := range actions {
			act := Action(actName)
			if !act.IsValid() {
				continue
			}
			if granted, ok := value.(bool); ok {
				am[act] = granted
			}
		}
		m[mod] = am
	}
	return m
}
