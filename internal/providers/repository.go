package providers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for providers.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Provider, int, error)
	Get(ctx context.Context, id int64) (Provider, error)
	Create(ctx context.Context, provider Provider) (Provider, error)
	Update(ctx context.Context, id int64, provider Provider) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const columns = `id, name, contact_name, email, phone, address, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Provider, int, error) {
	query := `SELECT ` + columns + ` FROM providers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM providers WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR contact_name ILIKE $` + strconv.Itoa(len(args)) + `)`
		query += cond
		countQuery += cond
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		cond := ` AND status = $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, filters.Limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.ContactName, &p.Email, &p.Phone, &p.Address, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Provider, error) {
	var p Provider
	err := r.db.QueryRow(ctx, `SELECT `+columns+` FROM providers WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.ContactName, &p.Email, &p.Phone, &p.Address, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, provider Provider) (Provider, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO providers (name, contact_name, email, phone, address, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
		provider.Name, provider.ContactName, provider.Email, provider.Phone, provider.Address, provider.Status, now).
		Scan(&provider.ID)
	if err != nil {
		return Provider{}, mapConstraint(err)
	}
	provider.CreatedAt = now
	provider.UpdatedAt = now
	return provider, nil
}

func (r *repository) Update(ctx context.Context, id int64, provider Provider) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE providers SET name = $1, contact_name = $2, email = $3, phone = $4, address = $5, status = $6, updated_at = $7 WHERE id = $8`,
		provider.Name, provider.ContactName, provider.Email, provider.Phone, provider.Address, provider.Status, time.Now(), id)
	if err != nil {
		return mapConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
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
	case "status":
		return "status " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
