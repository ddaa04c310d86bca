package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/maishamart/storefront/internal/model"
	"github.com/maishamart/storefront/internal/store"
)

func newMarketRouter(t *testing.T) (*mux.Router, *store.CatalogStore, *store.OrderBook) {
	t.Helper()

	catalog := store.NewCatalogStore()
	orders := store.NewOrderBook()
	h := NewMarketHandler(catalog, orders, nil, zap.NewNop())
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	return router, catalog, orders
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

func TestMarketHandler_HealthCheck(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)

	// Act
	rr := doJSON(t, router, http.MethodGet, "/health", nil)

	// Assert
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	health := decodeBody[HealthResponse](t, rr)
	if health.Status != "healthy" {
		t.Errorf("status = %s, want healthy", health.Status)
	}
}

func TestMarketHandler_ItemLifecycle(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)

	// Act - create
	rr := doJSON(t, router, http.MethodPost, "/api/items", model.ItemRequest{
		Name: "Milk", Category: "dairy", Price: 50,
	})

	// Assert
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", rr.Code, http.StatusCreated)
	}
	created := decodeBody[model.Item](t, rr)
	if created.ID == "" {
		t.Fatal("created item should have a generated id")
	}
	if created.Category != "dairy" {
		t.Errorf("Category = %s, want dairy", created.Category)
	}
	if created.Unit != "pc" {
		t.Errorf("Unit = %s, want pc default", created.Unit)
	}

	// Get by id
	rr = doJSON(t, router, http.MethodGet, "/api/items/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rr.Code, http.StatusOK)
	}
	got := decodeBody[model.Item](t, rr)
	if got != created {
		t.Errorf("GET item = %+v, want %+v", got, created)
	}

	// Full replace
	rr = doJSON(t, router, http.MethodPut, "/api/items/"+created.ID, model.ItemRequest{
		Name: "Skimmed Milk", Category: "dairy", Price: 55,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("put status = %d, want %d", rr.Code, http.StatusOK)
	}
	updated := decodeBody[model.Item](t, rr)
	if updated.ID != created.ID || updated.Name != "Skimmed Milk" {
		t.Errorf("PUT item = %+v, want same id with new name", updated)
	}

	// Delete
	rr = doJSON(t, router, http.MethodDelete, "/api/items/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", rr.Code, http.StatusOK)
	}
	msg := decodeBody[model.MessageResponse](t, rr)
	if msg.Message == "" {
		t.Error("delete should return a confirmation message")
	}

	// Deleted item is gone from reads and lists
	rr = doJSON(t, router, http.MethodGet, "/api/items/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	rr = doJSON(t, router, http.MethodGet, "/api/items", nil)
	items := decodeBody[[]model.Item](t, rr)
	if len(items) != 0 {
		t.Errorf("list after delete returned %d items, want 0", len(items))
	}
}

func TestMarketHandler_ItemNotFound(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"get", http.MethodGet, "/api/items/missing", nil},
		{"put", http.MethodPut, "/api/items/missing", model.ItemRequest{Name: "x"}},
		{"delete", http.MethodDelete, "/api/items/missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, _, _ := newMarketRouter(t)

			// Act
			rr := doJSON(t, router, tt.method, tt.path, tt.body)

			// Assert
			if rr.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
			}
			errResp := decodeBody[model.ErrorResponse](t, rr)
			if errResp.Code != http.StatusNotFound {
				t.Errorf("error code = %d, want 404", errResp.Code)
			}
			if errResp.Message == "" {
				t.Error("error message should name the missing id")
			}
		})
	}
}

func TestMarketHandler_ListItems_CategoryFilter(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)
	for _, req := range []model.ItemRequest{
		{Name: "Milk", Category: "dairy", Price: 50},
		{Name: "Bread", Category: "bakery", Price: 60},
		{Name: "Cheese", Category: "dairy", Price: 200},
	} {
		doJSON(t, router, http.MethodPost, "/api/items", req)
	}

	// Act
	rr := doJSON(t, router, http.MethodGet, "/api/items?category=dairy", nil)

	// Assert
	items := decodeBody[[]model.Item](t, rr)
	if len(items) != 2 {
		t.Fatalf("filtered list returned %d items, want 2", len(items))
	}
	if items[0].Name != "Milk" || items[1].Name != "Cheese" {
		t.Error("filtered items should keep insertion order")
	}
}

func TestMarketHandler_CreateItem_InvalidBody(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)

	// Act
	rr := doJSON(t, router, http.MethodPost, "/api/items", "not json")

	// Assert
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestMarketHandler_OrderLifecycle(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)

	// Act - create
	rr := doJSON(t, router, http.MethodPost, "/api/orders", model.OrderRequest{
		Items:       []map[string]any{{"name": "Milk", "qty": 2.0}},
		Customer:    model.CustomerInfo{Name: "Alice", Phone: "0700000000", Address: "Kakamega"},
		Subtotal:    50,
		DeliveryFee: 10,
	})

	// Assert
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", rr.Code, http.StatusCreated)
	}
	created := decodeBody[model.Order](t, rr)
	if created.Total != 60 {
		t.Errorf("Total = %f, want 60", created.Total)
	}
	if created.Status != model.StatusPending {
		t.Errorf("Status = %s, want pending", created.Status)
	}
	if created.Date == "" {
		t.Error("Date should be stamped at creation")
	}

	// Patch status
	rr = doJSON(t, router, http.MethodPatch, "/api/orders/"+created.ID+"/status", model.StatusUpdate{
		Status: model.StatusCompleted,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want %d", rr.Code, http.StatusOK)
	}

	// Subsequent reads reflect the new status and the stable total
	rr = doJSON(t, router, http.MethodGet, "/api/orders/"+created.ID, nil)
	got := decodeBody[model.Order](t, rr)
	if got.Status != model.StatusCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
	if got.Total != 60 {
		t.Errorf("Total = %f, want 60 after status change", got.Total)
	}

	// Delete, then reads fail
	rr = doJSON(t, router, http.MethodDelete, "/api/orders/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", rr.Code, http.StatusOK)
	}
	rr = doJSON(t, router, http.MethodGet, "/api/orders/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMarketHandler_UpdateOrderStatus_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{
			name:       "unknown status",
			body:       map[string]string{"status": "shipped"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid status",
			body:       model.StatusUpdate{Status: model.StatusCancelled},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, _, _ := newMarketRouter(t)
			rr := doJSON(t, router, http.MethodPost, "/api/orders", model.OrderRequest{Subtotal: 10})
			created := decodeBody[model.Order](t, rr)

			// Act
			rr = doJSON(t, router, http.MethodPatch, "/api/orders/"+created.ID+"/status", tt.body)

			// Assert
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestMarketHandler_ListOrders_StatusFilter(t *testing.T) {
	// Arrange
	router, _, _ := newMarketRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/api/orders", model.OrderRequest{Subtotal: 10})
	first := decodeBody[model.Order](t, rr)
	doJSON(t, router, http.MethodPost, "/api/orders", model.OrderRequest{Subtotal: 20})
	doJSON(t, router, http.MethodPatch, "/api/orders/"+first.ID+"/status", model.StatusUpdate{Status: model.StatusProcessing})

	// Act
	rr = doJSON(t, router, http.MethodGet, "/api/orders?status=processing", nil)

	// Assert
	orders := decodeBody[[]model.Order](t, rr)
	if len(orders) != 1 || orders[0].ID != first.ID {
		t.Errorf("filtered orders = %+v, want only the processing order", orders)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/orders", nil)
	all := decodeBody[[]model.Order](t, rr)
	if len(all) != 2 {
		t.Errorf("unfiltered list returned %d orders, want 2", len(all))
	}
}
