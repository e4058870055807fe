package categories

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements category management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	if category.Status == "" {
		category.Status = StatusActive
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, id int64, category Category) (Category, error) {
	if err := s.repo.Update(ctx, id, category); err != nil {
		return Category{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a category. Active categories cannot be removed; they
// must be set Inactive first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(category.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}
