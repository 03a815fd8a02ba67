package reservation

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

var statuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

func ValidStatus(s string) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	PartySize     int       `json:"party_size"`
	Date          string    `json:"reservation_date"`
	Time          string    `json:"reservation_time"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Slot struct {
	Time                string `json:"time"`
	Available           bool   `json:"available"`
	CurrentReservations int    `json:"current_reservations"`
}

type Availability struct {
	Date           string `json:"date"`
	AvailableTimes []Slot `json:"available_times"`
}

type RecentReservation struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	PartySize    int    `json:"party_size"`
	Date         string `json:"reservation_date"`
	Time         string `json:"reservation_time"`
	Status       string `json:"status"`
}

type Stats struct {
	TotalReservations     int                 `json:"total_reservations"`
	PendingReservations   int                 `json:"pending_reservations"`
	ConfirmedReservations int                 `json:"confirmed_reservations"`
	TodayReservations     int                 `json:"today_reservations"`
	RecentReservations    []RecentReservation `json:"recent_reservations"`
}
