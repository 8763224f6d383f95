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
	insertPizzaSQL = `
		INSERT INTO pizzas (id, flavor, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	selectAllPizzasSQL = `
		SELECT id, flavor, description, price, created_at, updated_at
		FROM pizzas
		ORDER BY created_at ASC`

	selectPizzaByIDSQL = `
		SELECT id, flavor, description, price, created_at, updated_at
		FROM pizzas WHERE id = $1`

	selectPizzasByIDsSQL = `
		SELECT id, flavor, description, price, created_at, updated_at
		FROM pizzas WHERE id = ANY($1)`

	updatePizzaSQL = `
		UPDATE pizzas
		SET flavor = COALESCE($2, flavor),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, flavor, description, price, created_at, updated_at`

	deletePizzaSQL = `
		DELETE FROM pizzas WHERE id = $1
		RETURNING id, flavor, description, price, created_at, updated_at`
)

// PizzaStore persists pizzas in PostgreSQL
type PizzaStore struct {
	db *database.DB
}

// NewPizzaStore creates a new pizza store
func NewPizzaStore(db *database.DB) *PizzaStore {
	return &PizzaStore{db: db}
}

// Create persists a new pizza and fills its generated fields
func (s *PizzaStore) Create(ctx context.Context, req *models.CreatePizzaRequest) (*models.Pizza, error) {
	pizza := &models.Pizza{
		ID:          uuid.New().String(),
		Flavor:      req.Flavor,
		Description: req.Description,
		Price:       req.Price,
	}

	err := s.db.QueryRow(ctx, insertPizzaSQL, pizza.ID, pizza.Flavor, pizza.Description, pizza.Price).
		Scan(&pizza.CreatedAt, &pizza.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pizza: %w", err)
	}

	return pizza, nil
}

// GetAll returns every pizza
func (s *PizzaStore) GetAll(ctx context.Context) ([]models.Pizza, error) {
	rows, err := s.db.Query(ctx, selectAllPizzasSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query pizzas: %w", err)
	}
	defer rows.Close()

	pizzas := []models.Pizza{}
	for rows.Next() {
		var p models.Pizza
		if err := rows.Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pizza row: %w", err)
		}
		pizzas = append(pizzas, p)
	}

	return pizzas, rows.Err()
}

// GetByID returns the pizza with the given id, or nil if absent
func (s *PizzaStore) GetByID(ctx context.Context, id string) (*models.Pizza, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var p models.Pizza
	err := s.db.QueryRow(ctx, selectPizzaByIDSQL, id).
		Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query pizza: %w", err)
	}

	return &p, nil
}

// GetByIDs resolves a list of pizza ids, preserving request order and
// duplicates. A reference that does not resolve fails with a NotFoundError
// naming the missing pizza.
func (s *PizzaStore) GetByIDs(ctx context.Context, ids []string) ([]models.Pizza, error) {
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query(ctx, selectPizzasByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query pizzas: %w", err)
	}
	defer rows.Close()

	found := make(map[string]models.Pizza, len(ids))
	for rows.Next() {
		var p models.Pizza
		if err := rows.Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pizza row: %w", err)
		}
		found[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pizzas := make([]models.Pizza, 0, len(ids))
	for _, id := range ids {
		p, ok := found[id]
		if !ok {
			return nil, models.NewNotFoundError("pizza", id)
		}
		pizzas = append(pizzas, p)
	}

	return pizzas, nil
}

// Update applies a partial update and returns the updated pizza, or nil if absent
func (s *PizzaStore) Update(ctx context.Context, id string, req *models.UpdatePizzaRequest) (*models.Pizza, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var p models.Pizza
	err := s.db.QueryRow(ctx, updatePizzaSQL, id, req.Flavor, req.Description, req.Price).
		Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update pizza: %w", err)
	}

	return &p, nil
}

// Delete removes the pizza with the given id and returns the deleted record,
// or nil if absent. Past orders keep their captured total.
func (s *PizzaStore) Delete(ctx context.Context, id string) (*models.Pizza, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var p models.Pizza
	err := s.db.QueryRow(ctx, deletePizzaSQL, id).
		Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete pizza: %w", err)
	}

	return &p, nil
}
