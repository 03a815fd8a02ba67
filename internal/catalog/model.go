package catalog

import "time"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Available   bool    `json:"available"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Special is a discount on one product for one calendar date.
type Special struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Discount float64 `json:"discount"`
	Date     string  `json:"date"`
}

// DiscountedPrice is price × (1 − discount/100), rounded to cents.
func (s Special) DiscountedPrice() float64 {
	return discounted(s.Product.Price, s.Discount)
}

type DashboardStats struct {
	TotalProducts   int `json:"total_products"`
	ActiveSpecials  int `json:"active_specials"`
	TotalCategories int `json:"total_categories"`
}

// ProductRequest is the admin create/update payload.
// swagger:model ProductRequest
type ProductRequest struct {
	Name        string  `json:"name"        example:"Cappuccino"`
	Description string  `json:"description" example:"Espresso con leche espumada"`
	Price       float64 `json:"price"       example:"3.50"`
	Category    string  `json:"category"    example:"cafes"`
	Image       string  `json:"image"`
	Available   *bool   `json:"available"`
}

// CategoryRequest is the admin create/update payload.
// swagger:model CategoryRequest
type CategoryRequest struct {
	ID          string `json:"id"          example:"cafes"`
	Name        string `json:"name"        example:"Cafés"`
	Description string `json:"description"`
	Icon        string `json:"icon"        example:"☕"`
}

// SpecialRequest is the admin create payload.
// swagger:model SpecialRequest
type SpecialRequest struct {
	ProductID int64   `json:"product_id" example:"1"`
	Discount  float64 `json:"discount"   example:"20"`
	Date      string  `json:"date"       example:"2026-10-15"`
}
