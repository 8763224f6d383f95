package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/services/customer"
	"pizzeria-system/internal/services/order"
	"pizzeria-system/internal/services/pizza"
)

// HealthChecker reports whether the persistence layer is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler maps HTTP requests to service calls and service errors to status codes
type Handler struct {
	customers *customer.Service
	pizzas    *pizza.Service
	orders    *order.Service
	health    HealthChecker
	logger    *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(customers *customer.Service, pizzas *pizza.Service, orders *order.Service, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		customers: customers,
		pizzas:    pizzas,
		orders:    orders,
		health:    health,
		logger:    log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /customers", h.withLogging(h.CreateCustomer))
	mux.HandleFunc("GET /customers", h.withLogging(h.ListCustomers))
	mux.HandleFunc("GET /customers/{id}", h.withLogging(h.GetCustomer))
	mux.HandleFunc("PUT /customers/{id}", h.withLogging(h.UpdateCustomer))
	mux.HandleFunc("DELETE /customers/{id}", h.withLogging(h.DeleteCustomer))
	mux.HandleFunc("GET /customers/{id}/orders", h.withLogging(h.GetCustomerOrders))

	mux.HandleFunc("POST /pizzas", h.withLogging(h.CreatePizza))
	mux.HandleFunc("GET /pizzas", h.withLogging(h.ListPizzas))
	mux.HandleFunc("GET /pizzas/{id}", h.withLogging(h.GetPizza))
	mux.HandleFunc("PUT /pizzas/{id}", h.withLogging(h.UpdatePizza))
	mux.HandleFunc("DELETE /pizzas/{id}", h.withLogging(h.DeletePizza))

	mux.HandleFunc("POST /orders", h.withLogging(h.CreateOrder))
	mux.HandleFunc("GET /orders", h.withLogging(h.ListOrders))
	mux.HandleFunc("GET /orders/{id}", h.withLogging(h.GetOrder))
	mux.HandleFunc("PUT /orders/{id}", h.withLogging(h.UpdateOrder))
	mux.HandleFunc("PUT /orders/{id}/status", h.withLogging(h.UpdateOrderStatus))
	mux.HandleFunc("DELETE /orders/{id}", h.withLogging(h.DeleteOrder))

	mux.HandleFunc("GET /swagger", h.withLogging(h.APIDocument))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := true
	if err := h.health.Ping(ctx); err != nil {
		h.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		healthy = false
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-system",
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, status, response)
}

// decodeBody decodes a JSON request body, rejecting unknown fields
func (h *Handler) decodeBody(r *http.Request, dst interface{}) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return models.NewValidationError("", "Content-Type must be application/json")
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return models.NewValidationError("", "invalid JSON format")
	}
	return nil
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeError translates a service error into a status code: validation
// failures map to 400, missing entities to 404, anything else to 500 with a
// generic message and the cause logged.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, requestID string, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		h.writeErrorResponse(w, http.StatusBadRequest, validationErr.Error(), requestID)
	case errors.As(err, &notFoundErr):
		h.writeErrorResponse(w, http.StatusNotFound, notFoundErr.Error(), requestID)
	default:
		h.logger.Error("request_failed", fmt.Sprintf("%s %s failed", r.Method, r.URL.Path),
			requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}
	h.writeJSON(w, statusCode, errorResponse)
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

type requestIDKey struct{}

// requestID returns the request identifier placed in the context by withLogging
func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
