package providers

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Provider is a goods or services supplier the club buys from.
type Provider struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
