package providers

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements provider management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Provider, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Provider, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, provider Provider) (Provider, error) {
	if provider.Status == "" {
		provider.Status = StatusActive
	}
	return s.repo.Create(ctx, provider)
}

func (s *Service) Update(ctx context.Context, id int64, provider Provider) (Provider, error) {
	if err := s.repo.Update(ctx, id, provider); err != nil {
		return Provider{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a provider. Active providers cannot be removed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	provider, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(provider.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}
