package events

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for events, inscriptions and
// appointments.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Event, int, error)
	Get(ctx context.Context, id int64) (Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, id int64, event Event) error
	Cancel(ctx context.Context, id int64, reason string, at time.Time) error
	Delete(ctx context.Context, id int64) error
	ListInscriptions(ctx context.Context, eventID int64, filters httpx.ListParams) ([]Inscription, int, error)
	CountInscriptions(ctx context.Context, eventID int64) (int, error)
	AddInscription(ctx context.Context, entry Inscription) (Inscription, error)
	ListAppointments(ctx context.Context, filters httpx.ListParams) ([]Appointment, int, error)
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	CreateAppointment(ctx context.Context, appt Appointment) (Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, appt Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const eventColumns = `id, name, description, location, start_date, end_date, capacity, status, cancel_reason, cancel_date, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Event, int, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM events WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR location ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Event
	for rows.Next() {
		var e Event
		var reason *string
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.StartDate, &e.EndDate, &e.Capacity, &e.Status, &reason, &e.CancelDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if reason != nil {
			e.CancelReason = *reason
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Event, error) {
	var e Event
	var reason *string
	err := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.StartDate, &e.EndDate, &e.Capacity, &e.Status, &reason, &e.CancelDate, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, httpx.ErrNotFound
	}
	if reason != nil {
		e.CancelReason = *reason
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, event Event) (Event, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (name, description, location, start_date, end_date, capacity, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		event.Name, event.Description, event.Location, event.StartDate, event.EndDate, event.Capacity, event.Status, now).
		Scan(&event.ID)
	if err != nil {
		return Event{}, err
	}
	event.CreatedAt = now
	event.UpdatedAt = now
	return event, nil
}

func (r *repository) Update(ctx context.Context, id int64, event Event) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET name = $1, description = $2, location = $3, start_date = $4, end_date = $5, capacity = $6, status = $7, updated_at = $8 WHERE id = $9`,
		event.Name, event.Description, event.Location, event.StartDate, event.EndDate, event.Capacity, event.Status, time.Now(), id)
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
		`UPDATE events SET status = $1, cancel_reason = $2, cancel_date = $3, updated_at = $3 WHERE id = $4`,
		StatusCancelled, reason, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// ListInscriptions returns entries newest first.
func (r *repository) ListInscriptions(ctx context.Context, eventID int64, filters httpx.ListParams) ([]Inscription, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_inscriptions WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, event_id, participant_name, email, phone, created_at FROM event_inscriptions WHERE event_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{eventID}
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

	var out []Inscription
	for rows.Next() {
		var ins Inscription
		if err := rows.Scan(&ins.ID, &ins.EventID, &ins.ParticipantName, &ins.Email, &ins.Phone, &ins.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, ins)
	}
	return out, total, rows.Err()
}

func (r *repository) CountInscriptions(ctx context.Context, eventID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_inscriptions WHERE event_id = $1`, eventID).Scan(&total)
	return total, err
}

func (r *repository) AddInscription(ctx context.Context, entry Inscription) (Inscription, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO event_inscriptions (event_id, participant_name, email, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.EventID, entry.ParticipantName, entry.Email, entry.Phone, now).
		Scan(&entry.ID)
	if err != nil {
		return Inscription{}, err
	}
	entry.CreatedAt = now
	return entry, nil
}

const appointmentColumns = `id, title, with_whom, location, date, start_time, end_time, status, notes, created_at, updated_at`

func (r *repository) ListAppointments(ctx context.Context, filters httpx.ListParams) ([]Appointment, int, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointments WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (title ILIKE $` + strconv.Itoa(len(args)) + ` OR with_whom ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	query += ` ORDER BY date DESC, start_time DESC`
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

	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.Title, &a.With, &a.Location, &a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *repository) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	var a Appointment
	err := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.With, &a.Location, &a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appointment{}, httpx.ErrNotFound
	}
	return a, err
}

func (r *repository) CreateAppointment(ctx context.Context, appt Appointment) (Appointment, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO appointments (title, with_whom, location, date, start_time, end_time, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`,
		appt.Title, appt.With, appt.Location, appt.Date, appt.StartTime, appt.EndTime, appt.Status, appt.Notes, now).
		Scan(&appt.ID)
	if err != nil {
		return Appointment{}, err
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now
	return appt, nil
}

func (r *repository) UpdateAppointment(ctx context.Context, id int64, appt Appointment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET title = $1, with_whom = $2, location = $3, date = $4, start_time = $5, end_time = $6, status = $7, notes = $8, updated_at = $9 WHERE id = $10`,
		appt.Title, appt.With, appt.Location, appt.Date, appt.StartTime, appt.EndTime, appt.Status, appt.Notes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteAppointment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
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
	case "start_date":
		return "start_date " + dir
	case "status":
		return "status " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "start_date DESC"
	}
}
