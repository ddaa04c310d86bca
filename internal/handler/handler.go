// Package handler provides the HTTP request handlers for both services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/maishamart/storefront/internal/model"
	"github.com/maishamart/storefront/internal/store"
)

// Version is the application version.
const Version = "1.0"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Domain metrics, labeled by service variant.
var (
	ordersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		},
		[]string{"service"},
	)

	orderStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Total number of order status updates",
		},
		[]string{"service", "status"},
	)
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func writeError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, model.ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// writeStoreError maps store errors to HTTP responses. Not-found errors keep
// their message, which names the missing identifier.
func writeStoreError(logger *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(logger, w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidID):
		writeError(logger, w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		writeError(logger, w, http.StatusInternalServerError, "internal server error")
	}
}

// healthCheck handles GET /health requests for both services.
func healthCheck(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(logger, w, http.StatusOK, HealthResponse{
			Status:  "healthy",
			Version: Version,
		})
	}
}
