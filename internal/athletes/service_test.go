package athletes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryRepo struct {
	nextID     int64
	athletes   map[int64]Athlete
	attendance []Attendance
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, athletes: make(map[int64]Athlete)}
}

func (m *memoryRepo) List(_ context.Context, _ httpx.ListParams) ([]Athlete, int, error) {
	out := make([]Athlete, 0, len(m.athletes))
	for _, a := range m.athletes {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Athlete, error) {
	a, ok := m.athletes[id]
	if !ok {
		return Athlete{}, httpx.ErrNotFound
	}
	return a, nil
}

func (m *memoryRepo) Create(_ context.Context, athlete Athlete) (Athlete, error) {
	athlete.ID = m.nextID
	m.nextID++
	m.athletes[athlete.ID] = athlete
	return athlete, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, athlete Athlete) error {
	if _, ok := m.athletes[id]; !ok {
		return httpx.ErrNotFound
	}
	athlete.ID = id
	m.athletes[id] = athlete
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.athletes[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.athletes, id)
	return nil
}

func (m *memoryRepo) ListAttendance(_ context.Context, athleteID int64, _ httpx.ListParams) ([]Attendance, int, error) {
	var out []Attendance
	// newest first
	for i := len(m.attendance) - 1; i >= 0; i-- {
		if m.attendance[i].AthleteID == athleteID {
			out = append(out, m.attendance[i])
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) AddAttendance(_ context.Context, entry Attendance) (Attendance, error) {
	entry.ID = m.nextID
	m.nextID++
	entry.CreatedAt = time.Now()
	m.attendance = append(m.attendance, entry)
	return entry, nil
}

func TestDeleteBlockedWhileActive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	athlete, err := svc.Create(context.Background(), Athlete{FirstName: "Luisa", LastName: "Mora", CategoryID: 1})
	require.NoError(t, err)
	require.Equal(t, StatusActive, athlete.Status)

	err = svc.Delete(context.Background(), athlete.ID)
	require.ErrorIs(t, err, httpx.ErrActiveRecord)

	athlete.Status = StatusInactive
	_, err = svc.Update(context.Background(), athlete.ID, athlete)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), athlete.ID))
	_, err = svc.Get(context.Background(), athlete.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteBlockedDespiteStatusCasingDrift(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	// Rows written before validation normalized casing.
	repo.athletes[99] = Athlete{ID: 99, FirstName: "Rosa", LastName: "Vega", Status: "ACTIVE"}

	err := svc.Delete(context.Background(), 99)
	require.ErrorIs(t, err, httpx.ErrActiveRecord)
}

func TestAttendanceListsNewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	athlete, err := svc.Create(context.Background(), Athlete{FirstName: "Pedro", LastName: "Gil", CategoryID: 1})
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	for d := 1; d <= 3; d++ {
		_, err := svc.RecordAttendance(context.Background(), Attendance{AthleteID: athlete.ID, Date: day(d), Present: true})
		require.NoError(t, err)
	}

	entries, total, err := svc.ListAttendance(context.Background(), athlete.ID, httpx.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, day(3), entries[0].Date)
	require.Equal(t, day(1), entries[2].Date)
}

func TestAttendanceRequiresExistingAthlete(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.RecordAttendance(context.Background(), Attendance{AthleteID: 99, Date: time.Now()})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
