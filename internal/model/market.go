// Package model defines the data structures shared by both storefront services.
package model

// OrderStatus is the lifecycle label of a supermarket order. The store
// accepts any enumerated value at any time; there is no transition graph.
type OrderStatus string

// Supermarket order statuses.
const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the enumerated values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Default values applied when a payload omits the field.
const (
	DefaultUnit          = "pc"
	DefaultPaymentMethod = "mpesa"
)

// Item is a supermarket catalog entry.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	Stock    int     `json:"stock"`
	Image    string  `json:"image"`
}

// ItemRequest is the payload for creating or replacing a catalog item.
type ItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	Stock    int     `json:"stock"`
	Image    string  `json:"image"`
}

// Item builds the catalog record for the given ID, applying field defaults.
func (r ItemRequest) Item(id string) Item {
	unit := r.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	return Item{
		ID:       id,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Unit:     unit,
		Stock:    r.Stock,
		Image:    r.Image,
	}
}

// CustomerInfo carries the contact and delivery details attached to an order.
type CustomerInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Area          string `json:"area,omitempty"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

// Order is a supermarket order. Items is an opaque snapshot of line-item
// data taken at creation time; no referential integrity is kept against
// the catalog afterwards. Total is computed once at creation and never
// recomputed.
type Order struct {
	ID          string           `json:"id"`
	Items       []map[string]any `json:"items"`
	Customer    CustomerInfo     `json:"customer"`
	Subtotal    float64          `json:"subtotal"`
	DeliveryFee float64          `json:"delivery_fee"`
	Total       float64          `json:"total"`
	Status      OrderStatus      `json:"status"`
	Date        string           `json:"date"`
}

// OrderRequest is the payload for creating a supermarket order.
type OrderRequest struct {
	Items       []map[string]any `json:"items"`
	Customer    CustomerInfo     `json:"customer"`
	Subtotal    float64          `json:"subtotal"`
	DeliveryFee float64          `json:"delivery_fee"`
}

// CustomerWithDefaults returns the customer info with the payment method
// default applied.
func (r OrderRequest) CustomerWithDefaults() CustomerInfo {
	c := r.Customer
	if c.PaymentMethod == "" {
		c.PaymentMethod = DefaultPaymentMethod
	}
	return c
}

// StatusUpdate is the payload for the order status endpoint.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}
