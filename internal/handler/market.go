package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/maishamart/storefront/internal/model"
	"github.com/maishamart/storefront/internal/store"
)

const marketService = "supermarket"

// MarketHandler handles the supermarket REST API under /api.
type MarketHandler struct {
	catalog *store.CatalogStore
	orders  *store.OrderBook
	events  *EventsHandler
	logger  *zap.Logger
}

// NewMarketHandler creates a new MarketHandler instance. events may be nil
// when no websocket feed is wired.
func NewMarketHandler(catalog *store.CatalogStore, orders *store.OrderBook, events *EventsHandler, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		catalog: catalog,
		orders:  orders,
		events:  events,
		logger:  logger,
	}
}

// RegisterRoutes registers the supermarket routes with the router.
func (h *MarketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", healthCheck(h.logger)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	api.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{id}", h.DeleteOrder).Methods(http.MethodDelete)
}

// CreateItem handles POST /api/items requests.
func (h *MarketHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req model.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		writeStoreError(h.logger, w, err, "create item")
		return
	}

	writeJSON(h.logger, w, http.StatusCreated, item)
}

// ListItems handles GET /api/items requests, optionally filtered by the
// category query parameter (exact, case-sensitive).
func (h *MarketHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeStoreError(h.logger, w, err, "list items")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, items)
}

// GetItem handles GET /api/items/{id} requests.
func (h *MarketHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeStoreError(h.logger, w, err, "get item")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, item)
}

// UpdateItem handles PUT /api/items/{id} requests. The record is replaced
// wholesale; fields absent from the payload are overwritten with defaults.
func (h *MarketHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.catalog.Update(r.Context(), id, req)
	if err != nil {
		writeStoreError(h.logger, w, err, "update item")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id} requests.
func (h *MarketHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeStoreError(h.logger, w, err, "delete item")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, model.MessageResponse{Message: "item deleted successfully"})
}

// CreateOrder handles POST /api/orders requests. The total is computed
// server-side; the item snapshot is stored without catalog validation.
func (h *MarketHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.Create(r.Context(), req)
	if err != nil {
		writeStoreError(h.logger, w, err, "create order")
		return
	}

	ordersCreatedTotal.WithLabelValues(marketService).Inc()
	h.events.Broadcast(model.NewOrderEvent(model.EventOrderCreated, order.ID, string(order.Status)))

	writeJSON(h.logger, w, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders requests, optionally filtered by the
// status query parameter.
func (h *MarketHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), model.OrderStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeStoreError(h.logger, w, err, "list orders")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id} requests.
func (h *MarketHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeStoreError(h.logger, w, err, "get order")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, order)
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status requests. Any
// enumerated status is accepted regardless of the current one.
func (h *MarketHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !upd.Status.Valid() {
		writeError(h.logger, w, http.StatusBadRequest, "invalid order status")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, upd.Status)
	if err != nil {
		writeStoreError(h.logger, w, err, "update order status")
		return
	}

	orderStatusUpdatesTotal.WithLabelValues(marketService, string(order.Status)).Inc()
	h.events.Broadcast(model.NewOrderEvent(model.EventStatusChanged, order.ID, string(order.Status)))

	writeJSON(h.logger, w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{id} requests.
func (h *MarketHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeStoreError(h.logger, w, err, "delete order")
		return
	}

	h.events.Broadcast(model.NewOrderEvent(model.EventOrderDeleted, id, ""))

	writeJSON(h.logger, w, http.StatusOK, model.MessageResponse{Message: "order deleted successfully"})
}
