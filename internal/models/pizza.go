package models

import "time"

// Pizza represents a pizza available for ordering
type Pizza struct {
	ID          string    `json:"id" db:"id"`
	Flavor      string    `json:"flavor" db:"flavor"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CreatePizzaRequest represents the request to create a new pizza
type CreatePizzaRequest struct {
	Flavor      string  `json:"flavor"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdatePizzaRequest represents a partial pizza update
type UpdatePizzaRequest struct {
	Flavor      *string  `json:"flavor,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// Validate validates the create pizza request
func (req *CreatePizzaRequest) Validate() error {
	if req.Flavor == "" {
		return NewValidationError("flavor", "is required")
	}
	if len(req.Flavor) > 100 {
		return NewValidationError("flavor", "must not exceed 100 characters")
	}
	if req.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	return nil
}

// Validate validates the update pizza request
func (req *UpdatePizzaRequest) Validate() error {
	if req.Flavor == nil && req.Description == nil && req.Price == nil {
		return NewValidationError("", "at least one field must be provided")
	}
	if req.Flavor != nil && *req.Flavor == "" {
		return NewValidationError("flavor", "must not be empty")
	}
	if req.Price != nil && *req.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	return nil
}
