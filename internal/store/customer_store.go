package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pizzeria-system/internal/database"
	"pizzeria-system/internal/models"
)

const (
	insertCustomerSQL = `
		INSERT INTO customers (id, name, table_number)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	selectAllCustomersSQL = `
		SELECT id, name, table_number, created_at, updated_at
		FROM customers
		ORDER BY created_at ASC`

	selectCustomerByIDSQL = `
		SELECT id, name, table_number, created_at, updated_at
		FROM customers WHERE id = $1`

	updateCustomerSQL = `
		UPDATE customers
		SET name = COALESCE($2, name),
		    table_number = COALESCE($3, table_number),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, table_number, created_at, updated_at`

	deleteCustomerSQL = `
		DELETE FROM customers WHERE id = $1
		RETURNING id, name, table_number, created_at, updated_at`
)

// validateID checks that an identity token is well formed before it reaches
// the database. Malformed tokens fail with a ValidationError.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewValidationError("id", fmt.Sprintf("%q is not a valid identifier", id))
	}
	return nil
}

// CustomerStore persists customers in PostgreSQL
type CustomerStore struct {
	db *database.DB
}

// NewCustomerStore creates a new customer store
func NewCustomerStore(db *database.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Create persists a new customer and fills its generated fields
func (s *CustomerStore) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Table: req.Table,
	}

	err := s.db.QueryRow(ctx, insertCustomerSQL, customer.ID, customer.Name, customer.Table).
		Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return customer, nil
}

// GetAll returns every customer
func (s *CustomerStore) GetAll(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db.Query(ctx, selectAllCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Table, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// GetByID returns the customer with the given id, or nil if absent
func (s *CustomerStore) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var c models.Customer
	err := s.db.QueryRow(ctx, selectCustomerByIDSQL, id).
		Scan(&c.ID, &c.Name, &c.Table, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// Update applies a partial update and returns the updated customer, or nil if absent
func (s *CustomerStore) Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var c models.Customer
	err := s.db.QueryRow(ctx, updateCustomerSQL, id, req.Name, req.Table).
		Scan(&c.ID, &c.Name, &c.Table, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &c, nil
}

// Delete removes the customer with the given id and returns the deleted
// record, or nil if absent. Existing orders keep their reference.
func (s *CustomerStore) Delete(ctx context.Context, id string) (*models.Customer, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var c models.Customer
	err := s.db.QueryRow(ctx, deleteCustomerSQL, id).
		Scan(&c.ID, &c.Name, &c.Table, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}

	return &c, nil
}
