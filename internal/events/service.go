package events

import (
	"context"
	"strings"
	"time"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements event, inscription and appointment management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Event, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, event Event) (Event, error) {
	if event.Status == "" {
		event.Status = StatusActive
	}
	return s.repo.Create(ctx, event)
}

// Update replaces the event. Cancelled events stay cancelled; edit does
// not revive them.
func (s *Service) Update(ctx context.Context, id int64, event Event) (Event, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if current.Status == StatusCancelled {
		event.Status = StatusCancelled
	}
	if err := s.repo.Update(ctx, id, event); err != nil {
		return Event{}, err
	}
	return s.repo.Get(ctx, id)
}

// Cancel marks the event cancelled with a reason, keeping the record
// and its inscriptions.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if event.Status == StatusCancelled {
		return event, nil
	}
	if err := s.repo.Cancel(ctx, id, reason, time.Now()); err != nil {
		return Event{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an event. Active events cannot be removed; cancel or
// finish them first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(event.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}

// ListInscriptions returns the event's sign-ups, newest first.
func (s *Service) ListInscriptions(ctx context.Context, eventID int64, filters httpx.ListParams) ([]Inscription, int, error) {
	if _, err := s.repo.Get(ctx, eventID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListInscriptions(ctx, eventID, filters)
}

// Register appends an inscription. Only active events accept sign-ups,
// and a positive capacity caps them.
func (s *Service) Register(ctx context.Context, entry Inscription) (Inscription, error) {
	event, err := s.repo.Get(ctx, entry.EventID)
	if err != nil {
		return Inscription{}, err
	}
	if event.Status != StatusActive {
		return Inscription{}, httpx.ErrValidation
	}
	if event.Capacity > 0 {
		count, err := s.repo.CountInscriptions(ctx, entry.EventID)
		if err != nil {
			return Inscription{}, err
		}
		if count >= event.Capacity {
			return Inscription{}, httpx.ErrValidation
		}
	}
	return s.repo.AddInscription(ctx, entry)
}

func (s *Service) ListAppointments(ctx context.Context, filters httpx.ListParams) ([]Appointment, int, error) {
	return s.repo.ListAppointments(ctx, filters)
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) CreateAppointment(ctx context.Context, appt Appointment) (Appointment, error) {
	if appt.Status == "" {
		appt.Status = AppointmentScheduled
	}
	return s.repo.CreateAppointment(ctx, appt)
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, appt Appointment) (Appointment, error) {
	if err := s.repo.UpdateAppointment(ctx, id, appt); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetAppointment(ctx, id)
}

// DeleteAppointment removes an appointment. Scheduled appointments
// must be completed or cancelled first.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	appt, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(appt.Status, AppointmentScheduled) {
		return httpx.ErrActiveRecord
	}
	return s.repo.DeleteAppointment(ctx, id)
}
