package order

// CreateOrderItem is one requested line. Name and price come from the catalog.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID int64  `json:"product_id" example:"1"`
	Quantity  int    `json:"quantity"   example:"2"`
	Notes     string `json:"notes,omitempty" example:"sin azúcar"`
}

// CreateOrderRequest is the public order payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	CustomerName  string            `json:"customer_name"  example:"Ana García"`
	CustomerEmail string            `json:"customer_email" example:"ana@example.com"`
	CustomerPhone string            `json:"customer_phone,omitempty" example:"+34 600 000 000"`
	Items         []CreateOrderItem `json:"items"`
	Notes         string            `json:"notes,omitempty"`
}

// StatusRequest changes an order's status.
// swagger:model OrderStatusRequest
type StatusRequest struct {
	Status string `json:"status" example:"preparing"`
}

const createOrderSchema = `{
	"type": "object",
	"required": ["customer_name", "customer_email", "items"],
	"properties": {
		"customer_name":  {"type": "string", "pattern": "\\S"},
		"customer_email": {"type": "string", "format": "email"},
		"items": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["product_id", "quantity"],
				"properties": {
					"product_id": {"type": "integer", "minimum": 1},
					"quantity":   {"type": "integer", "minimum": 1}
				}
			}
		}
	}
}`
