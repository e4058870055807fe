package donations

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/shared"
)

// ReceiptEnqueuer queues a thank-you/receipt email for a donation.
type ReceiptEnqueuer interface {
	EnqueueDonationReceipt(ctx context.Context, donation Donation) error
}

// Service implements donation management. Donations carry money, so
// every state change is written to the audit log.
type Service struct {
	repo     Repository
	audit    *shared.AuditLogger
	receipts ReceiptEnqueuer
	logger   *slog.Logger
}

// NewService builds a Service. receipts may be nil in tests.
func NewService(repo Repository, audit *shared.AuditLogger, receipts ReceiptEnqueuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, receipts: receipts, logger: logger}
}

func (s *Service) List(ctx context.Context, filters httpx.ListParams) ([]Donation, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Donation, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a donation, audit-logs it and queues the receipt
// email. A queue failure does not fail the request.
func (s *Service) Create(ctx context.Context, donation Donation, actorID int64) (Donation, error) {
	donation.Status = StatusReceived
	created, err := s.repo.Create(ctx, donation)
	if err != nil {
		return Donation{}, err
	}
	s.recordAudit(ctx, actorID, "donation.create", created.ID, map[string]any{
		"donorId": created.DonorID,
		"amount":  created.Amount,
	})
	if s.receipts != nil {
		if err := s.receipts.EnqueueDonationReceipt(ctx, created); err != nil {
			s.logger.Warn("enqueue donation receipt", slog.Int64("donation", created.ID), slog.Any("error", err))
		}
	}
	return created, nil
}

// Update replaces a donation's details. Cancelled donations are frozen.
func (s *Service) Update(ctx context.Context, id int64, donation Donation, actorID int64) (Donation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Donation{}, err
	}
	if current.Status == StatusCancelled {
		return Donation{}, httpx.ErrValidation
	}
	if err := s.repo.Update(ctx, id, donation); err != nil {
		return Donation{}, err
	}
	s.recordAudit(ctx, actorID, "donation.update", id, nil)
	return s.repo.Get(ctx, id)
}

// Cancel voids a donation with a reason instead of deleting it.
// Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id int64, reason string, actorID int64) (Donation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Donation{}, err
	}
	if current.Status == StatusCancelled {
		return current, nil
	}
	if err := s.repo.Cancel(ctx, id, reason, time.Now()); err != nil {
		return Donation{}, err
	}
	s.recordAudit(ctx, actorID, "donation.cancel", id, map[string]any{"reason": reason})
	return s.repo.Get(ctx, id)
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, donationID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "donation",
		EntityID: strconv.FormatInt(donationID, 10),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("audit donation", slog.String("action", action), slog.Any("error", err))
	}
}
