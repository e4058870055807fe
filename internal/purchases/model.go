package purchases

import "time"

// Purchase order statuses. Pending orders are still open and cannot be
// deleted.
const (
	StatusPending   = "Pending"
	StatusReceived  = "Received"
	StatusCancelled = "Cancelled"
)

// Purchase is an order placed with a provider.
type Purchase struct {
	ID           int64     `json:"id"`
	ProviderID   int64     `json:"providerId"`
	ProviderName string    `json:"provider"`
	OrderDate    time.Time `json:"orderDate"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	Total        float64   `json:"total"`
	Items        []Item    `json:"items"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item is one order line. Lines are insert-only; corrections add a new
// line rather than editing an old one.
type Item struct {
	ID          int64     `json:"id"`
	PurchaseID  int64     `json:"purchaseId"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subtotal is the line amount.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
