package purchases

import (
	"context"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements purchase order management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Purchase, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Purchase, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	purchase.Status = StatusPending
	return s.repo.Create(ctx, purchase)
}

// Update replaces the order header. Lines are append-only and statuses
// move through MarkReceived/Cancel, so neither is editable here.
func (s *Service) Update(ctx context.Context, id int64, purchase Purchase) (Purchase, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Purchase{}, err
	}
	if current.Status != StatusPending {
		return Purchase{}, httpx.ErrValidation
	}
	if err := s.repo.Update(ctx, id, purchase); err != nil {
		return Purchase{}, err
	}
	return s.repo.Get(ctx, id)
}

// AddItem appends a line to an open order.
func (s *Service) AddItem(ctx context.Context, item Item) (Item, error) {
	purchase, err := s.repo.Get(ctx, item.PurchaseID)
	if err != nil {
		return Item{}, err
	}
	if purchase.Status != StatusPending {
		return Item{}, httpx.ErrValidation
	}
	return s.repo.AddItem(ctx, item)
}

// MarkReceived closes an open order as fulfilled.
func (s *Service) MarkReceived(ctx context.Context, id int64) (Purchase, error) {
	return s.transition(ctx, id, StatusReceived)
}

// Cancel voids an open order.
func (s *Service) Cancel(ctx context.Context, id int64) (Purchase, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, status string) (Purchase, error) {
	purchase, err := s.repo.Get(ctx, id)
	if err != nil {
		return Purchase{}, err
	}
	if purchase.Status != StatusPending {
		return Purchase{}, httpx.ErrValidation
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return Purchase{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an order and its lines. Open orders cannot be removed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	purchase, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if purchase.Status == StatusPending {
		return httpx.ErrActiveRecord
	}
	return s.repo.Delete(ctx, id)
}
