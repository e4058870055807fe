package donations

import "time"

// Donation statuses. Donations are never deleted; they are cancelled
// with a reason and date so the financial trail stays intact.
const (
	StatusReceived  = "Received"
	StatusCancelled = "Cancelled"
)

// Payment methods.
const (
	MethodCash     = "Cash"
	MethodTransfer = "Transfer"
	MethodCard     = "Card"
	MethodInKind   = "InKind"
)

// Donation is money or goods received from a donor.
type Donation struct {
	ID           int64      `json:"id"`
	DonorID      int64      `json:"donorId"`
	DonorName    string     `json:"donor"`
	DonorEmail   string     `json:"-"`
	Amount       float64    `json:"amount"`
	Method       string     `json:"method"`
	Date         time.Time  `json:"date"`
	Notes        string     `json:"notes"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancelReason,omitempty"`
	CancelDate   *time.Time `json:"cancelDate,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
