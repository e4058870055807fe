package employees

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements employee and schedule management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Employee, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, employee Employee) (Employee, error) {
	if employee.Status == "" {
		employee.Status = StatusActive
	}
	return s.repo.Create(ctx, employee)
}

func (s *Service) Update(ctx context.Context, id int64, employee Employee) (Employee, error) {
	if err := s.repo.Update(ctx, id, employee); err != nil {
		return Employee{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an employee. Active employees cannot be removed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(employee.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}

// GetSchedule returns the employee's weekly schedule ordered by weekday
// and start time.
func (s *Service) GetSchedule(ctx context.Context, employeeID int64) ([]ScheduleEntry, error) {
	if _, err := s.repo.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.GetSchedule(ctx, employeeID)
}

// ReplaceSchedule replaces the whole weekly schedule.
func (s *Service) ReplaceSchedule(ctx context.Context, employeeID int64, entries []ScheduleEntry) ([]ScheduleEntry, error) {
	if _, err := s.repo.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ReplaceSchedule(ctx, employeeID, entries)
}
