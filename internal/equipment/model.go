package equipment

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusDisposed = "Disposed"
)

// Condition values tracked for inventory.
const (
	ConditionNew  = "New"
	ConditionGood = "Good"
	ConditionFair = "Fair"
	ConditionPoor = "Poor"
)

// Item is a piece of sports equipment in the club's inventory.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	SerialNumber string    `json:"serialNumber"`
	Condition    string    `json:"condition"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	AcquiredAt   time.Time `json:"acquiredAt"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
