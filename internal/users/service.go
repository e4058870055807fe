package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service implements user account management.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns accounts matching the filters plus the total count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]User, int, error) {
	return s.repo.ListUsers(ctx, filters)
}

// Get fetches one account.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// Create registers a new account with a bcrypt hashed password.
func (s *Service) Create(ctx context.Context, user User, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, user, string(hash))
}

// Update replaces the account's profile and role assignment.
func (s *Service) Update(ctx context.Context, user User) (User, error) {
	if _, err := s.repo.GetUser(ctx, user.ID); err != nil {
		return User{}, err
	}
	return s.repo.UpdateUser(ctx, user)
}

// Deactivate disables sign-in for the account without destroying history.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

// Activate re-enables sign-in for the account.
func (s *Service) Activate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, true)
}

// Delete removes an account outright. Accounts that have signed in are
// deactivated instead so audit history keeps a valid reference.
func (s *Service) Delete(ctx context.Context, id int64) error {
	used, err := s.repo.HasSessions(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return s.repo.SetActive(ctx, id, false)
	}
	return s.repo.DeleteUser(ctx, id)
}
