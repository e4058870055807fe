package donations

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for donations.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Donation, int, error)
	Get(ctx context.Context, id int64) (Donation, error)
	Create(ctx context.Context, donation Donation) (Donation, error)
	Update(ctx context.Context, id int64, donation Donation) error
	Cancel(ctx context.Context, id int64, reason string, at time.Time) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectDonation = `SELECT d.id, d.donor_id, dn.name, dn.email, d.amount, d.method, d.date, d.notes, d.status, d.cancel_reason, d.cancel_date, d.created_at, d.updated_at
FROM donations d JOIN donors dn ON dn.id = d.donor_id`

func scanDonation(row pgx.Row) (Donation, error) {
	var d Donation
	var reason *string
	err := row.Scan(&d.ID, &d.DonorID, &d.DonorName, &d.DonorEmail, &d.Amount, &d.Method, &d.Date, &d.Notes, &d.Status, &reason, &d.CancelDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Donation{}, err
	}
	if reason != nil {
		d.CancelReason = *reason
	}
	return d, nil
}

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Donation, int, error) {
	query := selectDonation + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM donations d JOIN donors dn ON dn.id = d.donor_id WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND dn.name ILIKE $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		cond := ` AND d.status = $` + strconv.Itoa(len(args))
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

	var out []Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Donation, error) {
	d, err := scanDonation(r.db.QueryRow(ctx, selectDonation+` WHERE d.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Donation{}, httpx.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, donation Donation) (Donation, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO donations (donor_id, amount, method, date, notes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
		donation.DonorID, donation.Amount, donation.Method, donation.Date, donation.Notes, donation.Status, now).
		Scan(&donation.ID)
	if err != nil {
		return Donation{}, err
	}
	return r.Get(ctx, donation.ID)
}

func (r *repository) Update(ctx context.Context, id int64, donation Donation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE donations SET donor_id = $1, amount = $2, method = $3, date = $4, notes = $5, updated_at = $6 WHERE id = $7`,
		donation.DonorID, donation.Amount, donation.Method, donation.Date, donation.Notes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Cancel(ctx context.Context, id int64, reason string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE donations SET status = $1, cancel_reason = $2, cancel_date = $3, updated_at = $3 WHERE id = $4`,
		StatusCancelled, reason, at, id)
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
	case "amount":
		return "d.amount " + dir
	case "donor":
		return "dn.name " + dir
	case "status":
		return "d.status " + dir
	default:
		return "d.date DESC, d.id DESC"
	}
}
