package model

import "time"

// ErrorResponse is the error body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is the confirmation body returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// Order event types published on the websocket feed.
const (
	EventOrderCreated  = "order_created"
	EventStatusChanged = "status_changed"
	EventOrderDeleted  = "order_deleted"
)

// OrderEvent is a message on the order lifecycle feed.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent builds an event stamped with the current UTC time.
func NewOrderEvent(eventType, orderID, status string) OrderEvent {
	return OrderEvent{
		Type:      eventType,
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
