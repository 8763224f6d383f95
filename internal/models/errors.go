package models

import "fmt"

// ValidationError indicates malformed or missing input from the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity kind.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// DanglingReferenceError indicates a reference that resolved at write time
// but no longer resolves at read time.
type DanglingReferenceError struct {
	Kind    string
	ID      string
	OrderID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("order %s references missing %s %s", e.OrderID, e.Kind, e.ID)
}
