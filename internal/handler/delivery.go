package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/maishamart/storefront/internal/model"
	"github.com/maishamart/storefront/internal/store"
)

const deliveryService = "delivery"

// DeliveryHandler handles the grocery-delivery REST API at the root path.
type DeliveryHandler struct {
	catalog *store.DeliveryCatalog
	orders  *store.DeliveryOrderBook
	events  *EventsHandler
	logger  *zap.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler instance. events may be
// nil when no websocket feed is wired.
func NewDeliveryHandler(catalog *store.DeliveryCatalog, orders *store.DeliveryOrderBook, events *EventsHandler, logger *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		catalog: catalog,
		orders:  orders,
		events:  events,
		logger:  logger,
	}
}

// RegisterRoutes registers the delivery routes with the router.
func (h *DeliveryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", healthCheck(h.logger)).Methods(http.MethodGet)
	router.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPatch)
}

// CreateItem handles POST /items requests.
func (h *DeliveryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req model.DeliveryItemRequest
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

// ListItems handles GET /items requests.
func (h *DeliveryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context(), "")
	if err != nil {
		writeStoreError(h.logger, w, err, "list items")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, items)
}

// CreateOrder handles POST /orders requests. Every referenced item ID is
// validated against the catalog first; a missing one rejects the whole
// request with 404 naming that ID, before any mutation occurs.
func (h *DeliveryHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.DeliveryOrderRequest
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

	ordersCreatedTotal.WithLabelValues(deliveryService).Inc()
	h.events.Broadcast(model.NewOrderEvent(model.EventOrderCreated, order.ID, string(order.Status)))

	writeJSON(h.logger, w, http.StatusCreated, order)
}

// ListOrders handles GET /orders requests, optionally filtered by the
// status query parameter.
func (h *DeliveryHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), model.DeliveryStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeStoreError(h.logger, w, err, "list orders")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id} requests.
func (h *DeliveryHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeStoreError(h.logger, w, err, "get order")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, order)
}

// UpdateOrderStatus handles PATCH /orders/{id}/status requests. The new
// status comes from the JSON body, falling back to the status query value.
func (h *DeliveryHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd model.DeliveryStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil || upd.Status == "" {
		upd.Status = model.DeliveryStatus(r.URL.Query().Get("status"))
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

	orderStatusUpdatesTotal.WithLabelValues(deliveryService, string(order.Status)).Inc()
	h.events.Broadcast(model.NewOrderEvent(model.EventStatusChanged, order.ID, string(order.Status)))

	writeJSON(h.logger, w, http.StatusOK, order)
}
