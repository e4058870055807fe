package donors

import (
	"context"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements donor and sponsor management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Donor, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Donor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, donor Donor) (Donor, error) {
	if donor.Status == "" {
		donor.Status = StatusActive
	}
	if donor.Type == "" {
		donor.Type = TypeIndividual
	}
	return s.repo.Create(ctx, donor)
}

func (s *Service) Update(ctx context.Context, id int64, donor Donor) (Donor, error) {
	if err := s.repo.Update(ctx, id, donor); err != nil {
		return Donor{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
