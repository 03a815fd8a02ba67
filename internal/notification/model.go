package notification

import "time"

// Types produced by the intake endpoints and admin actions. The column is free-form.
const (
	TypeOrder             = "order"
	TypeReservation       = "reservation"
	TypeContact           = "contact"
	TypeNewsletter        = "newsletter"
	TypeJobApplication    = "job_application"
	TypeOrderUpdate       = "order_update"
	TypeReservationUpdate = "reservation_update"
)

// Notification is an entry of the admin inbox. RelatedID is a weak reference to the
// row that caused it.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *int64    `json:"related_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadSummary is the badge data of the admin console.
type UnreadSummary struct {
	TotalUnread int            `json:"total_unread"`
	ByType      map[string]int `json:"by_type"`
}
