package authz

// Action is the unit of permission granularity within a module.
type Action string

const (
	ActionView   Action = "View"
	ActionCreate Action = "Create"
	ActionEdit   Action = "Edit"
	ActionDelete Action = "Delete"
)

var allActions = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

// AllActions returns the closed action set in a stable order.
func AllActions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

// IsValid reports whether the action belongs to the enumerated set.
func (a Action) IsValid() bool {
	switch a {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return true
	default:
		return false
	}
}

func (a Action) String() string { return string(a) }
