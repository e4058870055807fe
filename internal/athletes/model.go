package athletes

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Athlete is a club member enrolled in a sports category.
type Athlete struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	BirthDate    time.Time `json:"birthDate"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"category"`
	Guardian     string    `json:"guardian"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Attendance is one training-session attendance entry for an athlete.
// Entries are insert-only; the newest entry comes first in listings.
type Attendance struct {
	ID        int64     `json:"id"`
	AthleteID int64     `json:"athleteId"`
	Date      time.Time `json:"date"`
	Present   bool      `json:"present"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
