package inquiry

// swagger:model ContactRequest
type ContactRequest struct {
	Name    string `json:"name"    example:"Ana García"`
	Email   string `json:"email"   example:"ana@example.com"`
	Subject string `json:"subject" example:"Evento privado"`
	Message string `json:"message" example:"¿Alquiláis el local los domingos?"`
}

// swagger:model SubscribeRequest
type SubscribeRequest struct {
	Email string `json:"email" example:"ana@example.com"`
	Name  string `json:"name,omitempty" example:"Ana"`
}

// swagger:model JobApplicationRequest
type JobApplicationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position" example:"barista"`
	Experience string `json:"experience"`
	Motivation string `json:"motivation"`
	CVFilename string `json:"cv_filename,omitempty"`
}

// swagger:model NewsletterRequest
type NewsletterRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

const contactSchema = `{
	"type": "object",
	"required": ["name", "email", "subject", "message"],
	"properties": {
		"name":    {"type": "string", "pattern": "\\S"},
		"email":   {"type": "string", "format": "email"},
		"subject": {"type": "string", "pattern": "\\S"},
		"message": {"type": "string", "pattern": "\\S"}
	}
}`

const subscribeSchema = `{
	"type": "object",
	"required": ["email"],
	"properties": {
		"email": {"type": "string", "format": "email"}
	}
}`

const applicationSchema = `{
	"type": "object",
	"required": ["name", "email", "phone", "position", "experience", "motivation"],
	"properties": {
		"name":       {"type": "string", "pattern": "\\S"},
		"email":      {"type": "string", "format": "email"},
		"phone":      {"type": "string", "pattern": "\\S"},
		"position":   {"type": "string", "pattern": "\\S"},
		"experience": {"type": "string", "pattern": "\\S"},
		"motivation": {"type": "string", "pattern": "\\S"}
	}
}`
