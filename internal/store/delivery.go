package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/maishamart/storefront/internal/model"
)

// DeliveryCatalog holds the grocery-delivery item catalog.
type DeliveryCatalog struct {
	items *Collection[model.DeliveryItem]
}

// NewDeliveryCatalog creates an empty delivery catalog.
func NewDeliveryCatalog() *DeliveryCatalog {
	return &DeliveryCatalog{
		items: NewCollection("item", func(it model.DeliveryItem) string { return it.ID }),
	}
}

// Create appends a new item with a generated ID and returns it.
func (s *DeliveryCatalog) Create(ctx context.Context, req model.DeliveryItemRequest) (model.DeliveryItem, error) {
	item := req.Item(uuid.New().String())
	if err := s.items.Append(ctx, item); err != nil {
		return model.DeliveryItem{}, err
	}
	return item, nil
}

// List returns items in insertion order, optionally restricted to an exact
// case-sensitive category match.
func (s *DeliveryCatalog) List(ctx context.Context, category string) ([]model.DeliveryItem, error) {
	var keep func(model.DeliveryItem) bool
	if category != "" {
		keep = func(it model.DeliveryItem) bool { return it.Category == category }
	}
	return s.items.List(ctx, keep)
}

// Get returns the item with the given ID.
func (s *DeliveryCatalog) Get(ctx context.Context, id string) (model.DeliveryItem, error) {
	return s.items.Get(ctx, id)
}

// DeliveryOrderBook holds delivery orders. Order creation validates item
// references against the catalog.
type DeliveryOrderBook struct {
	orders  *Collection[model.DeliveryOrder]
	catalog *DeliveryCatalog
}

// NewDeliveryOrderBook creates an empty delivery order book backed by the
// given catalog.
func NewDeliveryOrderBook(catalog *DeliveryCatalog) *DeliveryOrderBook {
	return &DeliveryOrderBook{
		orders:  NewCollection("order", func(o model.DeliveryOrder) string { return o.ID }),
		catalog: catalog,
	}
}

// Create validates that every referenced item ID exists in the catalog,
// failing with a not-found error naming the first missing ID before any
// mutation occurs. On success it appends a new order with a generated ID
// and pending status.
func (s *DeliveryOrderBook) Create(ctx context.Context, req model.DeliveryOrderRequest) (model.DeliveryOrder, error) {
	for _, itemID := range req.ItemIDs {
		if _, err := s.catalog.Get(ctx, itemID); err != nil {
			return model.DeliveryOrder{}, err
		}
	}

	order := model.DeliveryOrder{
		ID:           uuid.New().String(),
		ItemIDs:      req.ItemIDs,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Status:       model.DeliveryPending,
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return model.DeliveryOrder{}, err
	}

	return order, nil
}

// List returns orders in insertion order, optionally restricted to an exact
// status match.
func (s *DeliveryOrderBook) List(ctx context.Context, status model.DeliveryStatus) ([]model.DeliveryOrder, error) {
	var keep func(model.DeliveryOrder) bool
	if status != "" {
		keep = func(o model.DeliveryOrder) bool { return o.Status == status }
	}
	return s.orders.List(ctx, keep)
}

// Get returns the order with the given ID.
func (s *DeliveryOrderBook) Get(ctx context.Context, id string) (model.DeliveryOrder, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus overwrites the status field in place and returns the updated
// order.
func (s *DeliveryOrderBook) UpdateStatus(ctx context.Context, id string, status model.DeliveryStatus) (model.DeliveryOrder, error) {
	return s.orders.Mutate(ctx, id, func(o *model.DeliveryOrder) {
		o.Status = status
	})
}
