// Package dashboard aggregates headline numbers for the landing page.
package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Summary is the set of counters shown on the dashboard.
type Summary struct {
	ActiveAthletes   int     `json:"activeAthletes"`
	UpcomingEvents   int     `json:"upcomingEvents"`
	ActiveEmployees  int     `json:"activeEmployees"`
	EquipmentItems   int     `json:"equipmentItems"`
	DonationsMonth   float64 `json:"donationsThisMonth"`
	PendingPurchases int     `json:"pendingPurchases"`
}

// Service computes dashboard summaries.
type Service struct {
	db *pgxpool.Pool
}

// NewService builds a Service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Summary runs the counter queries.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	row := s.db.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM athletes WHERE status = 'Active'),
		(SELECT COUNT(*) FROM events WHERE status = 'Active' AND start_date >= NOW()::date),
		(SELECT COUNT(*) FROM employees WHERE status = 'Active'),
		(SELECT COALESCE(SUM(quantity), 0) FROM equipment WHERE status = 'Active'),
		(SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = 'Received' AND date_trunc('month', date) = date_trunc('month', NOW())),
		(SELECT COUNT(*) FROM purchases WHERE status = 'Pending')`)
	err := row.Scan(&out.ActiveAthletes, &out.UpcomingEvents, &out.ActiveEmployees, &out.EquipmentItems, &out.DonationsMonth, &out.PendingPurchases)
	return out, err
}
