package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      []string
	subject string
	body    string
	err     error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.subject = subject
	m.body = body
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDonationReceiptHandlerSendsMail(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewDonationReceiptHandler(mailer, discardLogger())

	task, err := NewDonationReceiptTask(DonationReceiptPayload{
		DonationID: 42,
		DonorName:  "Ada Fund",
		DonorEmail: "ada@example.com",
		Amount:     150,
		Method:     "Transfer",
		Date:       "2026-03-01",
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, []string{"ada@example.com"}, mailer.to)
	require.Contains(t, mailer.body, "Ada Fund")
	require.Contains(t, mailer.body, "150.00")
}

func TestDonationReceiptHandlerSkipsMissingEmail(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewDonationReceiptHandler(mailer, discardLogger())

	task, err := NewDonationReceiptTask(DonationReceiptPayload{DonationID: 7, DonorName: "Anonymous"})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Empty(t, mailer.to)
}

type fakeRepairer struct {
	repaired int
	err      error
	calls    int
}

func (f *fakeRepairer) CompleteStoredMatrices(context.Context) (int, error) {
	f.calls++
	return f.repaired, f.err
}

func TestMatrixScanHandlerReportsRepairs(t *testing.T) {
	repairer := &fakeRepairer{repaired: 3}
	handler := NewMatrixScanHandler(repairer, discardLogger())

	require.NoError(t, handler(context.Background(), NewMatrixScanTask()))
	require.Equal(t, 1, repairer.calls)
}

func TestMatrixScanHandlerPropagatesErrors(t *testing.T) {
	repairer := &fakeRepairer{err: errors.New("db down")}
	handler := NewMatrixScanHandler(repairer, discardLogger())

	err := handler(context.Background(), NewMatrixScanTask())
	require.ErrorContains(t, err, "db down")
}
