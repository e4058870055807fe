package categories

import "time"

// Status values recorded for a category.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Category is a sports discipline the club trains (football, swimming...).
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AgeRange    string    `json:"ageRange"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
