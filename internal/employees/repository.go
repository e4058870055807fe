package employees

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/db"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for employees and their schedules.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Employee, int, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, employee Employee) (Employee, error)
	Update(ctx context.Context, id int64, employee Employee) error
	Delete(ctx context.Context, id int64) error
	GetSchedule(ctx context.Context, employeeID int64) ([]ScheduleEntry, error)
	ReplaceSchedule(ctx context.Context, employeeID int64, entries []ScheduleEntry) ([]ScheduleEntry, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const columns = `id, name, position, email, phone, hire_date, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Employee, int, error) {
	query := `SELECT ` + columns + ` FROM employees WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM employees WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR position ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Email, &e.Phone, &e.HireDate, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := r.db.QueryRow(ctx, `SELECT `+columns+` FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Position, &e.Email, &e.Phone, &e.HireDate, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, employee Employee) (Employee, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO employees (name, position, email, phone, hire_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
		employee.Name, employee.Position, employee.Email, employee.Phone, employee.HireDate, employee.Status, now).
		Scan(&employee.ID)
	if err != nil {
		return Employee{}, err
	}
	employee.CreatedAt = now
	employee.UpdatedAt = now
	return employee, nil
}

func (r *repository) Update(ctx context.Context, id int64, employee Employee) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE employees SET name = $1, position = $2, email = $3, phone = $4, hire_date = $5, status = $6, updated_at = $7 WHERE id = $8`,
		employee.Name, employee.Position, employee.Email, employee.Phone, employee.HireDate, employee.Status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) GetSchedule(ctx context.Context, employeeID int64) ([]ScheduleEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, employee_id, weekday, start_time, end_time, activity
		 FROM employee_schedules WHERE employee_id = $1
		 ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], weekday), start_time`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduleEntry
	for rows.Next() {
		var s ScheduleEntry
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Weekday, &s.StartTime, &s.EndTime, &s.Activity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceSchedule swaps the full weekly schedule in one transaction.
func (r *repository) ReplaceSchedule(ctx context.Context, employeeID int64, entries []ScheduleEntry) ([]ScheduleEntry, error) {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM employee_schedules WHERE employee_id = $1`, employeeID); err != nil {
			return err
		}
		for i := range entries {
			entries[i].EmployeeID = employeeID
			err := tx.QueryRow(ctx,
				`INSERT INTO employee_schedules (employee_id, weekday, start_time, end_time, activity)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				employeeID, entries[i].Weekday, entries[i].StartTime, entries[i].EndTime, entries[i].Activity).
				Scan(&entries[i].ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "position":
		return "position " + dir
	case "hire_date":
		return "hire_date " + dir
	default:
		return "name " + dir
	}
}
