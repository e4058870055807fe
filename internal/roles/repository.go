package roles

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// RepositoryPort defines data access for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context, filters RoleListFilters) ([]Role, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	RoleNameForUser(ctx context.Context, userID int64) (string, authz.Matrix, error)
	CreateRole(ctx context.Context, role Role) (Role, error)
	UpdateRole(ctx context.Context, role Role) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence. The permission matrix
// is stored as JSONB and validated before being trusted.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListRoles returns roles matching the filters.
func (r *Repository) ListRoles(ctx context.Context, filters RoleListFilters) ([]Role, error) {
	query := `SELECT id, name, description, permissions, created_at, updated_at FROM roles`
	args := []any{}
	if filters.Search != "" {
		query += ` WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}
	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by ID.
func (r *Repository) GetRole(ctx context.Context, id int64) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE id = $1`, id)
	return scanRoleRow(row)
}

// GetRoleByName fetches a role by its unique name.
func (r *Repository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE name = $1`, name)
	return scanRoleRow(row)
}

// RoleNameForUser returns the role name and decoded matrix for a user.
func (r *Repository) RoleNameForUser(ctx context.Context, userID int64) (string, authz.Matrix, error) {
	var name string
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT r.name, r.permissions FROM roles r JOIN users u ON u.role_id = r.id WHERE u.id = $1`,
		userID).Scan(&name, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, httpx.ErrNotFound
		}
		return "", nil, err
	}
	return name, decodeMatrix(raw), nil
}

// CreateRole inserts a new role.
func (r *Repository) CreateRole(ctx context.Context, role Role) (Role, error) {
	raw, err := json.Marshal(role.Matrix)
	if err != nil {
		return Role{}, err
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description, permissions, created_at, updated_at) VALUES ($1, $2, $3, NOW(), NOW())
		 RETURNING id, name, description, permissions, created_at, updated_at`,
		role.Name, role.Description, raw)
	created, err := scanRoleRow(row)
	if err != nil {
		return Role{}, mapConstraint(err)
	}
	return created, nil
}

// UpdateRole replaces a role's name, description and matrix.
func (r *Repository) UpdateRole(ctx context.Context, role Role) (Role, error) {
	raw, err := json.Marshal(role.Matrix)
	if err != nil {
		return Role{}, err
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE roles SET name = $2, description = $3, permissions = $4, updated_at = NOW() WHERE id = $1
		 RETURNING id, name, description, permissions, created_at, updated_at`,
		role.ID, role.Name, role.Description, raw)
	updated, err := scanRoleRow(row)
	if err != nil {
		return Role{}, mapConstraint(err)
	}
	return updated, nil
}

// DeleteRole removes a role by ID.
func (r *Repository) DeleteRole(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanRole(rows pgx.Rows) (Role, error) {
	var role Role
	var raw []byte
	if err := rows.Scan(&role.ID, &role.Name, &role.Description, &raw, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return Role{}, err
	}
	role.Matrix = decodeMatrix(raw)
	return role, nil
}

func scanRoleRow(row pgx.Row) (Role, error) {
	var role Role
	var raw []byte
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &raw, &role.CreatedAt, &role.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, httpx.ErrNotFound
		}
		return Role{}, err
	}
	role.Matrix = decodeMatrix(raw)
	return role, nil
}

// decodeMatrix parses a stored grant table, dropping anything that is not
// an enumerated module/action with a boolean value. A matrix persisted
// before a module was added comes back incomplete; Complete fills it at
// the service layer.
func decodeMatrix(raw []byte) authz.Matrix {
	if len(raw) == 0 {
		return authz.Matrix{}
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return authz.Matrix{}
	}
	return authz.MatrixFromRaw(decoded)
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}

var _ RepositoryPort = (*Repository)(nil)
