package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryUserRepo struct {
	nextID   int64
	users    map[int64]User
	hashes   map[int64]string
	sessions map[int64]bool
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		nextID:   1,
		users:    make(map[int64]User),
		hashes:   make(map[int64]string),
		sessions: make(map[int64]bool),
	}
}

func (m *memoryUserRepo) ListUsers(_ context.Context, _ ListFilters) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memoryUserRepo) GetUser(_ context.Context, id int64) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) CreateUser(_ context.Context, user User, hash string) (User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return User{}, httpx.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.IsActive = true
	m.users[user.ID] = user
	m.hashes[user.ID] = hash
	return user, nil
}

func (m *memoryUserRepo) UpdateUser(_ context.Context, user User) (User, error) {
	existing, ok := m.users[user.ID]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	user.IsActive = existing.IsActive
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	u.IsActive = active
	m.users[id] = u
	return nil
}

func (m *memoryUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.users, id)
	delete(m.hashes, id)
	return nil
}

func (m *memoryUserRepo) HasSessions(_ context.Context, id int64) (bool, error) {
	return m.sessions[id], nil
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), User{Email: "ana@club.test", Name: "Ana", RoleID: 2}, "hunter2hunter2")
	require.NoError(t, err)
	require.True(t, user.IsActive)

	hash := repo.hashes[user.ID]
	require.NotEqual(t, "hunter2hunter2", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2hunter2")))
}

func TestDeleteRemovesUnusedAccount(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), User{Email: "nuevo@club.test", Name: "Nuevo", RoleID: 2}, "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	_, err = svc.Get(context.Background(), user.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteDeactivatesAccountWithHistory(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), User{Email: "vet@club.test", Name: "Veterana", RoleID: 2}, "password123")
	require.NoError(t, err)
	repo.sessions[user.ID] = true

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	kept, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, kept.IsActive)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), User{Email: "dup@club.test", Name: "Uno", RoleID: 2}, "password123")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), User{Email: "dup@club.test", Name: "Dos", RoleID: 2}, "password123")
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}
