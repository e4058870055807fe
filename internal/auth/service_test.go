package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubdesk/clubdesk/internal/shared"
)

type memoryAuthRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newMemoryAuthRepo() *memoryAuthRepo {
	return &memoryAuthRepo{users: map[string]*User{}, sessions: map[string]int64{}}
}

func (m *memoryAuthRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (m *memoryAuthRepo) FindByID(_ context.Context, id int64) (*User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryAuthRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	m.sessions[id] = userID
	return nil
}

func (m *memoryAuthRepo) DeleteSession(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func seedUser(t *testing.T, repo *memoryAuthRepo, email, password string, active bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{
		ID:           int64(len(repo.users) + 1),
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		RoleID:       1,
		RoleName:     "Coach",
		IsActive:     active,
	}
	repo.users[email] = user
	return user
}

func TestAuthenticateValidCredentials(t *testing.T) {
	repo := newMemoryAuthRepo()
	seeded := seedUser(t, repo, "coach@club.test", "s3cret", true)
	svc := NewService(repo)

	user, err := svc.Authenticate(context.Background(), "coach@club.test", "s3cret")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.Equal(t, "Coach", user.RoleName)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newMemoryAuthRepo()
	seedUser(t, repo, "coach@club.test", "s3cret", true)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "coach@club.test", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(newMemoryAuthRepo())

	_, err := svc.Authenticate(context.Background(), "nobody@club.test", "s3cret")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := newMemoryAuthRepo()
	seedUser(t, repo, "former@club.test", "s3cret", false)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "former@club.test", "s3cret")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	repo := newMemoryAuthRepo()
	svc := NewService(repo)

	require.NoError(t, svc.RegisterSession(context.Background(), "sess-1", 7, time.Now().Add(time.Hour), "127.0.0.1", "test"))
	require.Equal(t, int64(7), repo.sessions["sess-1"])

	require.NoError(t, svc.RemoveSession(context.Background(), "sess-1"))
	require.NotContains(t, repo.sessions, "sess-1")
}
