package server

import (
	"context"
	"net/http"
	"time"

	"pizzeria-system/internal/models"
)

// CreateOrder handles POST /orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.CreateOrderRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	created, err := h.orders.CreateOrder(ctx, &req, reqID)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListOrders handles GET /orders requests
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id} requests
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

// UpdateOrder handles PUT /orders/{id} requests
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.UpdateOrderRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	updated, err := h.orders.UpdateOrder(r.Context(), r.PathValue("id"), &req, reqID)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// UpdateOrderStatus handles PUT /orders/{id}/status requests
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.UpdateOrderStatusRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	updated, err := h.orders.UpdateOrderStatus(r.Context(), r.PathValue("id"), &req, reqID)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteOrder handles DELETE /orders/{id} requests
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	deleted, err := h.orders.DeleteOrder(r.Context(), r.PathValue("id"), reqID)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, deleted)
}
