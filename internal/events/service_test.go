package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryRepo struct {
	nextID       int64
	events       map[int64]Event
	inscriptions []Inscription
	appointments map[int64]Appointment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		nextID:       1,
		events:       make(map[int64]Event),
		appointments: make(map[int64]Appointment),
	}
}

func (m *memoryRepo) List(_ context.Context, _ httpx.ListParams) ([]Event, int, error) {
	out := make([]Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Event, error) {
	e, ok := m.events[id]
	if !ok {
		return Event{}, httpx.ErrNotFound
	}
	return e, nil
}

func (m *memoryRepo) Create(_ context.Context, event Event) (Event, error) {
	event.ID = m.nextID
	m.nextID++
	m.events[event.ID] = event
	return event, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, event Event) error {
	if _, ok := m.events[id]; !ok {
		return httpx.ErrNotFound
	}
	event.ID = id
	m.events[id] = event
	return nil
}

func (m *memoryRepo) Cancel(_ context.Context, id int64, reason string, at time.Time) error {
	e, ok := m.events[id]
	if !ok {
		return httpx.ErrNotFound
	}
	e.Status = StatusCancelled
	e.CancelReason = reason
	e.CancelDate = &at
	m.events[id] = e
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memoryRepo) ListInscriptions(_ context.Context, eventID int64, _ httpx.ListParams) ([]Inscription, int, error) {
	var out []Inscription
	for i := len(m.inscriptions) - 1; i >= 0; i-- {
		if m.inscriptions[i].EventID == eventID {
			out = append(out, m.inscriptions[i])
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) CountInscriptions(_ context.Context, eventID int64) (int, error) {
	count := 0
	for _, ins := range m.inscriptions {
		if ins.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) AddInscription(_ context.Context, entry Inscription) (Inscription, error) {
	entry.ID = m.nextID
	m.nextID++
	entry.CreatedAt = time.Now()
	m.inscriptions = append(m.inscriptions, entry)
	return entry, nil
}

func (m *memoryRepo) ListAppointments(_ context.Context, _ httpx.ListParams) ([]Appointment, int, error) {
	out := make([]Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *memoryRepo) GetAppointment(_ context.Context, id int64) (Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return Appointment{}, httpx.ErrNotFound
	}
	return a, nil
}

func (m *memoryRepo) CreateAppointment(_ context.Context, appt Appointment) (Appointment, error) {
	appt.ID = m.nextID
	m.nextID++
	m.appointments[appt.ID] = appt
	return appt, nil
}

func (m *memoryRepo) UpdateAppointment(_ context.Context, id int64, appt Appointment) error {
	if _, ok := m.appointments[id]; !ok {
		return httpx.ErrNotFound
	}
	appt.ID = id
	m.appointments[id] = appt
	return nil
}

func (m *memoryRepo) DeleteAppointment(_ context.Context, id int64) error {
	if _, ok := m.appointments[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.appointments, id)
	return nil
}

func TestInscriptionsNewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), Event{Name: "Open Day"})
	require.NoError(t, err)

	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		_, err := svc.Register(context.Background(), Inscription{EventID: event.ID, ParticipantName: name})
		require.NoError(t, err)
	}

	entries, total, err := svc.ListInscriptions(context.Background(), event.ID, httpx.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, "Carla", entries[0].ParticipantName)
	require.Equal(t, "Ana", entries[2].ParticipantName)
}

func TestRegisterRespectsCapacity(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), Event{Name: "Trial", Capacity: 2})
	require.NoError(t, err)

	for _, name := range []string{"Ana", "Bruno"} {
		_, err := svc.Register(context.Background(), Inscription{EventID: event.ID, ParticipantName: name})
		require.NoError(t, err)
	}

	_, err = svc.Register(context.Background(), Inscription{EventID: event.ID, ParticipantName: "Carla"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCancelledEventRejectsInscriptions(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), Event{Name: "Gala"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), event.ID, "venue unavailable")
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)
	require.Equal(t, "venue unavailable", cancelled.CancelReason)

	_, err = svc.Register(context.Background(), Inscription{EventID: event.ID, ParticipantName: "Ana"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteBlockedWhileActive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), Event{Name: "Tournament"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), event.ID)
	require.ErrorIs(t, err, httpx.ErrActiveRecord)

	_, err = svc.Cancel(context.Background(), event.ID, "rained out")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), event.ID))
}

func TestEditDoesNotReviveCancelledEvent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), Event{Name: "Derby"})
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), event.ID, "strike")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), event.ID, Event{Name: "Derby", Status: StatusActive})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, updated.Status)
}
