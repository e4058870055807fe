package workforce

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Worker is a short-term contractor hired for a task (event setup,
// maintenance, seasonal help).
type Worker struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Task      string    `json:"task"`
	Phone     string    `json:"phone"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	DailyRate float64   `json:"dailyRate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team is a named group of temporary workers assembled for a purpose.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Purpose   string    `json:"purpose"`
	Members   []string  `json:"members"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
