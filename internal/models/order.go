package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusConfirming OrderStatus = "Confirming"
	StatusPreparing  OrderStatus = "Preparing"
	StatusReady      OrderStatus = "Ready"
)

// ParseOrderStatus validates a raw status value against the closed enumeration.
// Any of the three values may be written directly; transitions are not forced
// to be sequential.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusConfirming, StatusPreparing, StatusReady:
		return OrderStatus(raw), nil
	default:
		return "", NewValidationError("status",
			fmt.Sprintf("must be one of: %s, %s, %s", StatusConfirming, StatusPreparing, StatusReady))
	}
}

// Order represents a customer order. Customer and Pizzas are populated on
// resolved reads; CustomerID and PizzaIDs always carry the raw references.
type Order struct {
	ID         string      `json:"id" db:"id"`
	CustomerID string      `json:"customer_id" db:"customer_id"`
	Customer   *Customer   `json:"customer,omitempty"`
	PizzaIDs   []string    `json:"pizza_ids,omitempty"`
	Pizzas     []Pizza     `json:"pizzas,omitempty"`
	Status     OrderStatus `json:"status" db:"status"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	CreatedAt  time.Time   `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	Customer string   `json:"customer"`
	Pizzas   []string `json:"pizzas"`
	Status   string   `json:"status,omitempty"`
}

// UpdateOrderRequest represents a partial order update. TotalPrice is captured
// at creation time and is never recomputed here, even when the pizza list changes.
type UpdateOrderRequest struct {
	Customer *string  `json:"customer,omitempty"`
	Pizzas   []string `json:"pizzas,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

// UpdateOrderStatusRequest represents a status-only order update
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	if req.Customer == "" {
		return NewValidationError("customer", "is required")
	}
	if len(req.Pizzas) == 0 {
		return NewValidationError("pizzas", "must contain at least one pizza")
	}
	if req.Status != "" {
		if _, err := ParseOrderStatus(req.Status); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the update order request
func (req *UpdateOrderRequest) Validate() error {
	if req.Customer == nil && req.Pizzas == nil && req.Status == nil {
		return NewValidationError("", "at least one field must be provided")
	}
	if req.Customer != nil && *req.Customer == "" {
		return NewValidationError("customer", "must not be empty")
	}
	if req.Pizzas != nil && len(req.Pizzas) == 0 {
		return NewValidationError("pizzas", "must contain at least one pizza")
	}
	if req.Status != nil {
		if _, err := ParseOrderStatus(*req.Status); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the status update request
func (req *UpdateOrderStatusRequest) Validate() error {
	if req.Status == "" {
		return NewValidationError("status", "is required")
	}
	_, err := ParseOrderStatus(req.Status)
	return err
}
