package model

// DeliveryStatus is the lifecycle label of a delivery order. As with
// OrderStatus, any enumerated value may follow any other.
type DeliveryStatus string

// Delivery order statuses.
const (
	DeliveryPending    DeliveryStatus = "pending"
	DeliveryDispatched DeliveryStatus = "dispatched"
	DeliveryDelivered  DeliveryStatus = "delivered"
)

// Valid reports whether the status is one of the enumerated values.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryDispatched, DeliveryDelivered:
		return true
	}
	return false
}

// DeliveryItem is a grocery-delivery catalog entry.
type DeliveryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// DeliveryItemRequest is the payload for creating a delivery catalog item.
type DeliveryItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Item builds the catalog record for the given ID.
func (r DeliveryItemRequest) Item(id string) DeliveryItem {
	return DeliveryItem{
		ID:       id,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
	}
}

// DeliveryOrder references catalog items by ID and carries flat customer
// contact details.
type DeliveryOrder struct {
	ID           string         `json:"id"`
	ItemIDs      []string       `json:"item_ids"`
	CustomerName string         `json:"customer_name"`
	Address      string         `json:"address"`
	Status       DeliveryStatus `json:"status"`
}

// DeliveryOrderRequest is the payload for creating a delivery order. Every
// referenced item ID must exist in the catalog at creation time.
type DeliveryOrderRequest struct {
	ItemIDs      []string `json:"item_ids"`
	CustomerName string   `json:"customer_name"`
	Address      string   `json:"address"`
}

// DeliveryStatusUpdate is the payload for the delivery status endpoint.
type DeliveryStatusUpdate struct {
	Status DeliveryStatus `json:"status"`
}
