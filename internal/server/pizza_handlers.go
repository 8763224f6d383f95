package server

import (
	"net/http"

	"pizzeria-system/internal/models"
)

// CreatePizza handles POST /pizzas requests
func (h *Handler) CreatePizza(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.CreatePizzaRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	created, err := h.pizzas.CreatePizza(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListPizzas handles GET /pizzas requests
func (h *Handler) ListPizzas(w http.ResponseWriter, r *http.Request) {
	pizzas, err := h.pizzas.ListPizzas(r.Context())
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, pizzas)
}

// GetPizza handles GET /pizzas/{id} requests
func (h *Handler) GetPizza(w http.ResponseWriter, r *http.Request) {
	pizza, err := h.pizzas.GetPizza(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, pizza)
}

// UpdatePizza handles PUT /pizzas/{id} requests
func (h *Handler) UpdatePizza(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req models.UpdatePizzaRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	updated, err := h.pizzas.UpdatePizza(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.writeError(w, r, reqID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeletePizza handles DELETE /pizzas/{id} requests
func (h *Handler) DeletePizza(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.pizzas.DeletePizza(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, requestID(r), err)
		return
	}

	h.writeJSON(w, http.StatusOK, deleted)
}
