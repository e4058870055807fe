package events

import "time"

// Event statuses.
const (
	StatusActive    = "Active"
	StatusFinished  = "Finished"
	StatusCancelled = "Cancelled"
)

// Appointment statuses.
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Event is a club activity open for inscription (tournament, open day,
// fundraiser).
type Event struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Capacity     int        `json:"capacity"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancelReason,omitempty"`
	CancelDate   *time.Time `json:"cancelDate,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Inscription is one sign-up for an event. Inscriptions are insert-only
// and listed newest first.
type Inscription struct {
	ID              int64     `json:"id"`
	EventID         int64     `json:"eventId"`
	ParticipantName string    `json:"participantName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CreatedAt       time.Time `json:"created_at"`
}

// Appointment is a scheduled meeting on the club agenda (trials,
// sponsor meetings, facility visits).
type Appointment struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	With      string    `json:"with"`
	Location  string    `json:"location"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
