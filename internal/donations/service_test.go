package donations

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryRepo struct {
	nextID    int64
	donations map[int64]Donation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, donations: make(map[int64]Donation)}
}

func (m *memoryRepo) List(_ context.Context, _ httpx.ListParams) ([]Donation, int, error) {
	out := make([]Donation, 0, len(m.donations))
	for _, d := range m.donations {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Donation, error) {
	d, ok := m.donations[id]
	if !ok {
		return Donation{}, httpx.ErrNotFound
	}
	return d, nil
}

func (m *memoryRepo) Create(_ context.Context, donation Donation) (Donation, error) {
	donation.ID = m.nextID
	m.nextID++
	m.donations[donation.ID] = donation
	return donation, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, donation Donation) error {
	existing, ok := m.donations[id]
	if !ok {
		return httpx.ErrNotFound
	}
	donation.ID = id
	donation.Status = existing.Status
	m.donations[id] = donation
	return nil
}

func (m *memoryRepo) Cancel(_ context.Context, id int64, reason string, at time.Time) error {
	d, ok := m.donations[id]
	if !ok {
		return httpx.ErrNotFound
	}
	d.Status = StatusCancelled
	d.CancelReason = reason
	d.CancelDate = &at
	m.donations[id] = d
	return nil
}

type captureEnqueuer struct {
	enqueued []Donation
}

func (c *captureEnqueuer) EnqueueDonationReceipt(_ context.Context, donation Donation) error {
	c.enqueued = append(c.enqueued, donation)
	return nil
}

func newTestService(repo Repository, receipts ReceiptEnqueuer) *Service {
	return NewService(repo, nil, receipts, slog.Default())
}

func TestCreateQueuesReceipt(t *testing.T) {
	repo := newMemoryRepo()
	receipts := &captureEnqueuer{}
	svc := newTestService(repo, receipts)

	donation, err := svc.Create(context.Background(), Donation{DonorID: 1, Amount: 250, Method: MethodTransfer}, 7)
	require.NoError(t, err)
	require.Equal(t, StatusReceived, donation.Status)
	require.Len(t, receipts.enqueued, 1)
	require.Equal(t, donation.ID, receipts.enqueued[0].ID)
}

func TestCancelKeepsRecordWithReason(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)

	donation, err := svc.Create(context.Background(), Donation{DonorID: 1, Amount: 100, Method: MethodCash}, 7)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), donation.ID, "duplicated entry", 7)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)
	require.Equal(t, "duplicated entry", cancelled.CancelReason)
	require.NotNil(t, cancelled.CancelDate)

	// The record is still there.
	kept, err := svc.Get(context.Background(), donation.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, kept.Status)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)

	donation, err := svc.Create(context.Background(), Donation{DonorID: 1, Amount: 100, Method: MethodCash}, 7)
	require.NoError(t, err)

	first, err := svc.Cancel(context.Background(), donation.ID, "first reason", 7)
	require.NoError(t, err)

	second, err := svc.Cancel(context.Background(), donation.ID, "second reason", 7)
	require.NoError(t, err)
	require.Equal(t, first.CancelReason, second.CancelReason)
}

func TestUpdateCancelledDonationRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)

	donation, err := svc.Create(context.Background(), Donation{DonorID: 1, Amount: 100, Method: MethodCash}, 7)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), donation.ID, "void", 7)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), donation.ID, Donation{DonorID: 1, Amount: 200, Method: MethodCash}, 7)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
