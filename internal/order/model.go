package order

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var statuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusDelivered: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is one of the order statuses.
func ValidStatus(s string) bool { return statuses[s] }

// Item is a line of an order. Name and price are snapshots taken at creation.
type Item struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes"`
}

type Order struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Items         []Item    `json:"items"`
	TotalAmount   float64   `json:"total_amount"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type RecentOrder struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type Stats struct {
	TotalOrders     int           `json:"total_orders"`
	PendingOrders   int           `json:"pending_orders"`
	CompletedOrders int           `json:"completed_orders"`
	TotalRevenue    float64       `json:"total_revenue"`
	RecentOrders    []RecentOrder `json:"recent_orders"`
}
