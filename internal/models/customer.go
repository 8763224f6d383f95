package models

import (
	"time"
)

// Customer represents a customer seated at a table
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Table     int       `json:"table" db:"table_number"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateCustomerRequest represents the request to create a new customer
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Table int    `json:"table"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Table *int    `json:"table,omitempty"`
}

// Validate validates the create customer request
func (req *CreateCustomerRequest) Validate() error {
	if req.Name == "" {
		return NewValidationError("name", "is required")
	}
	if len(req.Name) > 100 {
		return NewValidationError("name", "must not exceed 100 characters")
	}
	if req.Table < 1 {
		return NewValidationError("table", "must be a positive table number")
	}
	return nil
}

// Validate validates the update customer request
func (req *UpdateCustomerRequest) Validate() error {
	if req.Name == nil && req.Table == nil {
		return NewValidationError("", "at least one field must be provided")
	}
	if req.Name != nil && *req.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if req.Table != nil && *req.Table < 1 {
		return NewValidationError("table", "must be a positive table number")
	}
	return nil
}
