// Package inquiry handles the public contact form, newsletter subscriptions and
// job applications, and their admin views.
package inquiry

import "time"

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Active       bool      `json:"active"`
}

type JobApplication struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	Experience string    `json:"experience"`
	Motivation string    `json:"motivation"`
	CVFilename string    `json:"cv_filename,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubscribeResult tells a new subscription apart from a reactivated one.
type SubscribeResult struct {
	Message     string `json:"message"`
	Reactivated bool   `json:"reactivated"`
}

// SendResult summarizes a newsletter broadcast.
type SendResult struct {
	Message string `json:"message"`
	Queued  int    `json:"queued_count"`
	Total   int    `json:"total_subscribers"`
}
