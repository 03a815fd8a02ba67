package reservation

// CreateReservationRequest is the public booking payload.
// swagger:model CreateReservationRequest
type CreateReservationRequest struct {
	CustomerName  string `json:"customer_name"    example:"Ana García"`
	CustomerEmail string `json:"customer_email"   example:"ana@example.com"`
	CustomerPhone string `json:"customer_phone"   example:"+34 600 000 000"`
	PartySize     int    `json:"party_size"       example:"4"`
	Date          string `json:"reservation_date" example:"2026-10-20"`
	Time          string `json:"reservation_time" example:"20:30"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateReservationRequest is the admin partial update. Nil fields are left unchanged.
// swagger:model UpdateReservationRequest
type UpdateReservationRequest struct {
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	PartySize     *int    `json:"party_size,omitempty"`
	Date          *string `json:"reservation_date,omitempty"`
	Time          *string `json:"reservation_time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// swagger:model ReservationStatusRequest
type StatusRequest struct {
	Status string `json:"status" example:"confirmed"`
}

const contactSchema = `{
	"type": "object",
	"required": ["customer_name", "customer_email", "customer_phone"],
	"properties": {
		"customer_name":  {"type": "string", "pattern": "\\S"},
		"customer_email": {"type": "string", "format": "email"},
		"customer_phone": {"type": "string", "pattern": "\\S"}
	}
}`
