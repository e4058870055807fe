package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDonationReceipt sends the thank-you receipt for a donation.
	TaskDonationReceipt = "mail:donation_receipt"
	// TaskMatrixScan repairs persisted permission matrices.
	TaskMatrixScan = "authz:matrix_scan"
)

// DonationReceiptPayload carries what the receipt email needs.
type DonationReceiptPayload struct {
	DonationID int64   `json:"donationId"`
	DonorName  string  `json:"donorName"`
	DonorEmail string  `json:"donorEmail"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Date       string  `json:"date"`
}

// NewDonationReceiptTask constructs the Asynq task.
func NewDonationReceiptTask(payload DonationReceiptPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDonationReceipt, data), nil
}

// NewMatrixScanTask constructs the periodic matrix repair task.
func NewMatrixScanTask() *asynq.Task {
	return asynq.NewTask(TaskMatrixScan, nil)
}

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay (Mailpit in
// development).
type SMTPMailer struct {
	Addr string
	From string
}

// Send delivers one message.
func (m SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg))
}

// NewDonationReceiptHandler processes TaskDonationReceipt tasks.
func NewDonationReceiptHandler(mailer Mailer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DonationReceiptPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.DonorEmail == "" {
			logger.Info("donation receipt skipped, donor has no email",
				slog.Int64("donation", payload.DonationID))
			return nil
		}
		subject := "Thank you for your donation"
		body := fmt.Sprintf("Dear %s,\n\nWe received your donation of %.2f (%s) on %s.\nReference: %d\n\nThank you for supporting the club.",
			payload.DonorName, payload.Amount, payload.Method, payload.Date, payload.DonationID)
		if err := mailer.Send(ctx, payload.DonorEmail, subject, body); err != nil {
			return fmt.Errorf("send donation receipt: %w", err)
		}
		logger.Info("donation receipt sent",
			slog.Int64("donation", payload.DonationID),
			slog.String("to", payload.DonorEmail))
		return nil
	}
}

// MatrixRepairer completes stored permission matrices that are missing
// module or action keys.
type MatrixRepairer interface {
	CompleteStoredMatrices(ctx context.Context) (int, error)
}

// NewMatrixScanHandler processes TaskMatrixScan tasks.
func NewMatrixScanHandler(repairer MatrixRepairer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		repaired, err := repairer.CompleteStoredMatrices(ctx)
		if err != nil {
			return fmt.Errorf("matrix scan: %w", err)
		}
		if repaired > 0 {
			logger.Info("permission matrices repaired", slog.Int("count", repaired))
		}
		return nil
	}
}
