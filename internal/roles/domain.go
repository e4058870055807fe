package roles

import (
	"time"

	"github.com/clubdesk/clubdesk/internal/authz"
)

// Role is a named permission grouping with its module/action grant table.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Matrix      authz.Matrix `json:"matrix"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsReserved reports whether the role is the Administrator wildcard, which
// the API never edits or deletes.
func (r Role) IsReserved() bool {
	return r.Name == authz.AdministratorName
}

// RoleListFilters are the supported list parameters.
type RoleListFilters struct {
	Search  string
	SortBy  string
	SortDir string
}
