package donors

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for donors.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Donor, int, error)
	Get(ctx context.Context, id int64) (Donor, error)
	Create(ctx context.Context, donor Donor) (Donor, error)
	Update(ctx context.Context, id int64, donor Donor) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const columns = `id, name, type, email, phone, notes, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Donor, int, error) {
	query := `SELECT ` + columns + ` FROM donors WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM donors WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR email ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Donor
	for rows.Next() {
		var d Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Email, &d.Phone, &d.Notes, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Donor, error) {
	var d Donor
	err := r.db.QueryRow(ctx, `SELECT `+columns+` FROM donors WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Type, &d.Email, &d.Phone, &d.Notes, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Donor{}, httpx.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, donor Donor) (Donor, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO donors (name, type, email, phone, notes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
		donor.Name, donor.Type, donor.Email, donor.Phone, donor.Notes, donor.Status, now).
		Scan(&donor.ID)
	if err != nil {
		return Donor{}, err
	}
	donor.CreatedAt = now
	donor.UpdatedAt = now
	return donor, nil
}

func (r *repository) Update(ctx context.Context, id int64, donor Donor) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE donors SET name = $1, type = $2, email = $3, phone = $4, notes = $5, status = $6, updated_at = $7 WHERE id = $8`,
		donor.Name, donor.Type, donor.Email, donor.Phone, donor.Notes, donor.Status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "type":
		return "type " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
