package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maishamart/storefront/internal/model"
)

// CatalogStore holds the supermarket item catalog.
type CatalogStore struct {
	items *Collection[model.Item]
}

// NewCatalogStore creates an empty supermarket catalog.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		items: NewCollection("item", func(it model.Item) string { return it.ID }),
	}
}

// Create appends a new item with a generated ID and returns it.
func (s *CatalogStore) Create(ctx context.Context, req model.ItemRequest) (model.Item, error) {
	item := req.Item(uuid.New().String())
	if err := s.items.Append(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// List returns items in insertion order. A non-empty category restricts the
// result to exact case-sensitive matches.
func (s *CatalogStore) List(ctx context.Context, category string) ([]model.Item, error) {
	var keep func(model.Item) bool
	if category != "" {
		keep = func(it model.Item) bool { return it.Category == category }
	}
	return s.items.List(ctx, keep)
}

// Get returns the item with the given ID.
func (s *CatalogStore) Get(ctx context.Context, id string) (model.Item, error) {
	return s.items.Get(ctx, id)
}

// Update replaces the whole record at the matching position with a new one
// sharing the same ID. Fields are overwritten, not merged.
func (s *CatalogStore) Update(ctx context.Context, id string, req model.ItemRequest) (model.Item, error) {
	return s.items.Replace(ctx, id, req.Item(id))
}

// Delete removes the item with the given ID.
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	return s.items.Remove(ctx, id)
}

// OrderBook holds supermarket orders.
type OrderBook struct {
	orders *Collection[model.Order]
}

// NewOrderBook creates an empty supermarket order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders: NewCollection("order", func(o model.Order) string { return o.ID }),
	}
}

// newOrderID builds the human-readable order identifier: a short tag plus
// the first 8 characters of a UUID, uppercased. Collisions are possible at
// scale; the contract documents this as a gap.
func newOrderID() string {
	return "MM-" + strings.ToUpper(uuid.New().String()[:8])
}

// Create appends a new order and returns it. The total is computed once
// here (subtotal + delivery fee) and never recomputed; the creation date is
// stamped in UTC ISO-8601; the initial status is always pending. The item
// snapshot is stored as-is with no validation against the catalog.
func (s *OrderBook) Create(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	order := model.Order{
		ID:          newOrderID(),
		Items:       req.Items,
		Customer:    req.CustomerWithDefaults(),
		Subtotal:    req.Subtotal,
		DeliveryFee: req.DeliveryFee,
		Total:       req.Subtotal + req.DeliveryFee,
		Status:      model.StatusPending,
		Date:        time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return model.Order{}, err
	}

	return order, nil
}

// List returns orders in insertion order, optionally restricted to an exact
// status match.
func (s *OrderBook) List(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var keep func(model.Order) bool
	if status != "" {
		keep = func(o model.Order) bool { return o.Status == status }
	}
	return s.orders.List(ctx, keep)
}

// Get returns the order with the given ID.
func (s *OrderBook) Get(ctx context.Context, id string) (model.Order, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus overwrites the status field in place and returns the updated
// order. Any enumerated status may follow any other.
func (s *OrderBook) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	return s.orders.Mutate(ctx, id, func(o *model.Order) {
		o.Status = status
	})
}

// Delete removes the order with the given ID.
func (s *OrderBook) Delete(ctx context.Context, id string) error {
	return s.orders.Remove(ctx, id)
}
