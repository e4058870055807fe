package athletes

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for athletes and their attendance.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Athlete, int, error)
	Get(ctx context.Context, id int64) (Athlete, error)
	Create(ctx context.Context, athlete Athlete) (Athlete, error)
	Update(ctx context.Context, id int64, athlete Athlete) error
	Delete(ctx context.Context, id int64) error
	ListAttendance(ctx context.Context, athleteID int64, filters httpx.ListParams) ([]Attendance, int, error)
	AddAttendance(ctx context.Context, entry Attendance) (Attendance, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectAthlete = `SELECT a.id, a.first_name, a.last_name, a.birth_date, a.category_id, c.name, a.guardian, a.phone, a.status, a.created_at, a.updated_at
FROM athletes a JOIN sports_categories c ON c.id = a.category_id`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Athlete, int, error) {
	query := selectAthlete + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM athletes a WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (a.first_name ILIKE $` + strconv.Itoa(len(args)) + ` OR a.last_name ILIKE $` + strconv.Itoa(len(args)) + `)`
		query += cond
		countQuery += cond
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		cond := ` AND a.status = $` + strconv.Itoa(len(args))
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

	var out []Athlete
	for rows.Next() {
		var a Athlete
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthDate, &a.CategoryID, &a.CategoryName, &a.Guardian, &a.Phone, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Athlete, error) {
	var a Athlete
	err := r.db.QueryRow(ctx, selectAthlete+` WHERE a.id = $1`, id).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthDate, &a.CategoryID, &a.CategoryName, &a.Guardian, &a.Phone, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Athlete{}, httpx.ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, athlete Athlete) (Athlete, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO athletes (first_name, last_name, birth_date, category_id, guardian, phone, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		athlete.FirstName, athlete.LastName, athlete.BirthDate, athlete.CategoryID, athlete.Guardian, athlete.Phone, athlete.Status, now).
		Scan(&athlete.ID)
	if err != nil {
		return Athlete{}, err
	}
	athlete.CreatedAt = now
	athlete.UpdatedAt = now
	return athlete, nil
}

func (r *repository) Update(ctx context.Context, id int64, athlete Athlete) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE athletes SET first_name = $1, last_name = $2, birth_date = $3, category_id = $4, guardian = $5, phone = $6, status = $7, updated_at = $8 WHERE id = $9`,
		athlete.FirstName, athlete.LastName, athlete.BirthDate, athlete.CategoryID, athlete.Guardian, athlete.Phone, athlete.Status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// ListAttendance returns entries newest first.
func (r *repository) ListAttendance(ctx context.Context, athleteID int64, filters httpx.ListParams) ([]Attendance, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM athlete_attendance WHERE athlete_id = $1`, athleteID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, athlete_id, date, present, notes, created_at FROM athlete_attendance WHERE athlete_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{athleteID}
	if filters.Limit > 0 {
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, filters.Limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		var e Attendance
		if err := rows.Scan(&e.ID, &e.AthleteID, &e.Date, &e.Present, &e.Notes, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) AddAttendance(ctx context.Context, entry Attendance) (Attendance, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO athlete_attendance (athlete_id, date, present, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.AthleteID, entry.Date, entry.Present, entry.Notes, now).
		Scan(&entry.ID)
	if err != nil {
		return Attendance{}, err
	}
	entry.CreatedAt = now
	return entry, nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "category":
		return "c.name " + dir
	case "status":
		return "a.status " + dir
	case "created_at":
		return "a.created_at " + dir
	default:
		return "a.last_name " + dir + ", a.first_name " + dir
	}
}
