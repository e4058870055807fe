package workforce

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for temporary workers and teams.
type Repository interface {
	ListWorkers(ctx context.Context, filters httpx.ListParams) ([]Worker, int, error)
	GetWorker(ctx context.Context, id int64) (Worker, error)
	CreateWorker(ctx context.Context, worker Worker) (Worker, error)
	UpdateWorker(ctx context.Context, id int64, worker Worker) error
	DeleteWorker(ctx context.Context, id int64) error
	ListTeams(ctx context.Context, filters httpx.ListParams) ([]Team, int, error)
	GetTeam(ctx context.Context, id int64) (Team, error)
	CreateTeam(ctx context.Context, team Team) (Team, error)
	UpdateTeam(ctx context.Context, id int64, team Team) error
	DeleteTeam(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const workerColumns = `id, name, task, phone, start_date, end_date, daily_rate, status, created_at, updated_at`

func (r *repository) ListWorkers(ctx context.Context, filters httpx.ListParams) ([]Worker, int, error) {
	query := `SELECT ` + workerColumns + ` FROM temporary_workers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM temporary_workers WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR task ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Worker
	for rows.Next() {
		var wk Worker
		if err := rows.Scan(&wk.ID, &wk.Name, &wk.Task, &wk.Phone, &wk.StartDate, &wk.EndDate, &wk.DailyRate, &wk.Status, &wk.CreatedAt, &wk.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, wk)
	}
	return out, total, rows.Err()
}

func (r *repository) GetWorker(ctx context.Context, id int64) (Worker, error) {
	var wk Worker
	err := r.db.QueryRow(ctx, `SELECT `+workerColumns+` FROM temporary_workers WHERE id = $1`, id).
		Scan(&wk.ID, &wk.Name, &wk.Task, &wk.Phone, &wk.StartDate, &wk.EndDate, &wk.DailyRate, &wk.Status, &wk.CreatedAt, &wk.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Worker{}, httpx.ErrNotFound
	}
	return wk, err
}

func (r *repository) CreateWorker(ctx context.Context, worker Worker) (Worker, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO temporary_workers (name, task, phone, start_date, end_date, daily_rate, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		worker.Name, worker.Task, worker.Phone, worker.StartDate, worker.EndDate, worker.DailyRate, worker.Status, now).
		Scan(&worker.ID)
	if err != nil {
		return Worker{}, err
	}
	worker.CreatedAt = now
	worker.UpdatedAt = now
	return worker, nil
}

func (r *repository) UpdateWorker(ctx context.Context, id int64, worker Worker) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE temporary_workers SET name = $1, task = $2, phone = $3, start_date = $4, end_date = $5, daily_rate = $6, status = $7, updated_at = $8 WHERE id = $9`,
		worker.Name, worker.Task, worker.Phone, worker.StartDate, worker.EndDate, worker.DailyRate, worker.Status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteWorker(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM temporary_workers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

const teamColumns = `id, name, purpose, members, status, created_at, updated_at`

func (r *repository) ListTeams(ctx context.Context, filters httpx.ListParams) ([]Team, int, error) {
	query := `SELECT ` + teamColumns + ` FROM temporary_teams WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM temporary_teams WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR purpose ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Purpose, &t.Members, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *repository) GetTeam(ctx context.Context, id int64) (Team, error) {
	var t Team
	err := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM temporary_teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Purpose, &t.Members, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Team{}, httpx.ErrNotFound
	}
	return t, err
}

func (r *repository) CreateTeam(ctx context.Context, team Team) (Team, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO temporary_teams (name, purpose, members, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`,
		team.Name, team.Purpose, team.Members, team.Status, now).
		Scan(&team.ID)
	if err != nil {
		return Team{}, err
	}
	team.CreatedAt = now
	team.UpdatedAt = now
	return team, nil
}

func (r *repository) UpdateTeam(ctx context.Context, id int64, team Team) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE temporary_teams SET name = $1, purpose = $2, members = $3, status = $4, updated_at = $5 WHERE id = $6`,
		team.Name, team.Purpose, team.Members, team.Status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteTeam(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM temporary_teams WHERE id = $1`, id)
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
	case "status":
		return "status " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
