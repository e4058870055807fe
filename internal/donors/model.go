package donors

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Donor kinds.
const (
	TypeIndividual = "Individual"
	TypeCompany    = "Company"
)

// Donor is a person or company that sponsors or donates to the club.
type Donor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
