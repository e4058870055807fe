package athletes

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements athlete and attendance management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Athlete, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Athlete, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, athlete Athlete) (Athlete, error) {
	if athlete.Status == "" {
		athlete.Status = StatusActive
	}
	return s.repo.Create(ctx, athlete)
}

func (s *Service) Update(ctx context.Context, id int64, athlete Athlete) (Athlete, error) {
	if err := s.repo.Update(ctx, id, athlete); err != nil {
		return Athlete{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an athlete. Active athletes cannot be removed; set
// them Inactive first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	athlete, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(athlete.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}

// ListAttendance returns the athlete's attendance entries, newest first.
func (s *Service) ListAttendance(ctx context.Context, athleteID int64, filters httpx.ListParams) ([]Attendance, int, error) {
	if _, err := s.repo.Get(ctx, athleteID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListAttendance(ctx, athleteID, filters)
}

// RecordAttendance appends an attendance entry. Entries are never
// edited or removed afterwards.
func (s *Service) RecordAttendance(ctx context.Context, entry Attendance) (Attendance, error) {
	if _, err := s.repo.Get(ctx, entry.AthleteID); err != nil {
		return Attendance{}, err
	}
	return s.repo.AddAttendance(ctx, entry)
}
