package employees

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Employee is a salaried club staff member.
type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	HireDate  time.Time `json:"hireDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleEntry is one recurring working block in an employee's weekly
// schedule.
type ScheduleEntry struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Weekday    string `json:"weekday"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Activity   string `json:"activity"`
}

// Weekday values accepted in schedule entries.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
