package equipment

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements equipment inventory management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Item, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	if item.Status == "" {
		item.Status = StatusActive
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, item Item) (Item, error) {
	if err := s.repo.Update(ctx, id, item); err != nil {
		return Item{}, err
	}
	return s.repo.Get(ctx, id)
}

// Dispose retires an item from inventory. Items still marked Active
// cannot be disposed of; set them Inactive first.
func (s *Service) Dispose(ctx context.Context, id int64) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(item.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.SetStatus(ctx, id, StatusDisposed)
}

// Delete removes an item outright, subject to the same Active guard as
// disposal.
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(item.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}
