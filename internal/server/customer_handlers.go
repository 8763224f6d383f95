package server

import (
	"net/http"

	"pizzeria-system/internal/models"
)

// CreateCustomer handles POST /customers requests
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.CreateCustomerRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	created, err := h.customers.CreateCustomer(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListCustomers handles GET /customers requests
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, customers)
}

// GetCustomer handles GET /customers/{id} requests
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/{id} requests
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.UpdateCustomerRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	updated, err := h.customers.UpdateCustomer(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /customers/{id} requests
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.customers.DeleteCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, deleted)
}

// GetCustomerOrders handles GET /customers/{id}/orders requests
func (h *Handler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	orders, err := h.orders.GetCustomerOrders(r.Context(), r.PathValue("id"), reqID)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}
