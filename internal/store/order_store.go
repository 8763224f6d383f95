package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pizzeria-system/internal/database"
	"pizzeria-system/internal/models"
)

const (
	insertOrderSQL = `
		INSERT INTO orders (id, customer_id, status, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	insertOrderPizzaSQL = `
		INSERT INTO order_pizzas (order_id, pizza_id, position)
		VALUES ($1, $2, $3)`

	deleteOrderPizzasSQL = `
		DELETE FROM order_pizzas WHERE order_id = $1`

	selectOrderByIDSQL = `
		SELECT o.id, o.customer_id, o.status, o.total_price, o.created_at, o.updated_at,
		       c.id, c.name, c.table_number, c.created_at, c.updated_at
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`

	selectAllOrdersSQL = `
		SELECT o.id, o.customer_id, o.status, o.total_price, o.created_at, o.updated_at,
		       c.id, c.name, c.table_number, c.created_at, c.updated_at
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at ASC`

	selectOrdersByCustomerSQL = `
		SELECT id, customer_id, status, total_price, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at ASC`

	selectOrderPizzaIDsSQL = `
		SELECT pizza_id FROM order_pizzas
		WHERE order_id = $1
		ORDER BY position ASC`

	selectOrderPizzasSQL = `
		SELECT p.id, p.flavor, p.description, p.price, p.created_at, p.updated_at
		FROM order_pizzas op
		JOIN pizzas p ON p.id = op.pizza_id
		WHERE op.order_id = $1
		ORDER BY op.position ASC`

	updateOrderSQL = `
		UPDATE orders
		SET customer_id = COALESCE($2, customer_id),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	deleteOrderSQL = `
		DELETE FROM orders WHERE id = $1`
)

// OrderStore persists orders in PostgreSQL. An order row carries the customer
// reference and captured total; the referenced pizzas live in the order_pizzas
// join table, ordered by position.
type OrderStore struct {
	db *database.DB
}

// NewOrderStore creates a new order store
func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create persists a new order together with its pizza references in one
// transaction and fills the order's generated fields.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	order.ID = uuid.New().String()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertOrderSQL, order.ID, order.CustomerID, order.Status, order.TotalPrice).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, pizzaID := range order.PizzaIDs {
		if _, err := tx.Exec(ctx, insertOrderPizzaSQL, order.ID, pizzaID, i); err != nil {
			return fmt.Errorf("failed to insert order pizza: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID returns the order with the given id with its customer and pizzas
// resolved, or nil if absent.
func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	order, err := s.scanResolvedOrder(s.db.QueryRow(ctx, selectOrderByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := s.attachPizzas(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetAll returns every order with customers and pizzas resolved
func (s *OrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, selectAllOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := s.scanResolvedOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.attachPizzas(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// ListByCustomer returns the orders referencing the given customer with raw
// pizza references only. Resolution of the references is the caller's fan-out.
func (s *OrderStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	if err := validateID(customerID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, selectOrdersByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		pizzaIDs, err := s.getPizzaIDs(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].PizzaIDs = pizzaIDs
	}

	return orders, nil
}

// Update applies a partial update in one transaction and returns the updated
// resolved order, or nil if absent. The captured total is left untouched even
// when the pizza list changes.
func (s *OrderStore) Update(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var updatedID string
	err = tx.QueryRow(ctx, updateOrderSQL, id, req.Customer, req.Status).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if req.Pizzas != nil {
		if _, err := tx.Exec(ctx, deleteOrderPizzasSQL, id); err != nil {
			return nil, fmt.Errorf("failed to clear order pizzas: %w", err)
		}
		for i, pizzaID := range req.Pizzas {
			if _, err := tx.Exec(ctx, insertOrderPizzaSQL, id, pizzaID, i); err != nil {
				return nil, fmt.Errorf("failed to insert order pizza: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes the order with the given id and returns the deleted resolved
// record, or nil if absent. Join rows go with the order.
func (s *OrderStore) Delete(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if err := s.db.Exec(ctx, deleteOrderSQL, id); err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	return order, nil
}

// scanResolvedOrder scans an order row joined with its customer. A dangling
// customer reference leaves Customer nil.
func (s *OrderStore) scanResolvedOrder(row pgx.Row) (*models.Order, error) {
	var (
		o                models.Order
		custID, custName *string
		custTable        *int
		custCreated      *time.Time
		custUpdated      *time.Time
	)

	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt,
		&custID, &custName, &custTable, &custCreated, &custUpdated,
	)
	if err != nil {
		return nil, err
	}

	if custID != nil {
		o.Customer = &models.Customer{
			ID:        *custID,
			Name:      *custName,
			Table:     *custTable,
			CreatedAt: *custCreated,
			UpdatedAt: *custUpdated,
		}
	}

	return &o, nil
}

// attachPizzas loads the order's pizza references and resolved pizza records
func (s *OrderStore) attachPizzas(ctx context.Context, order *models.Order) error {
	pizzaIDs, err := s.getPizzaIDs(ctx, order.ID)
	if err != nil {
		return err
	}
	order.PizzaIDs = pizzaIDs

	rows, err := s.db.Query(ctx, selectOrderPizzasSQL, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order pizzas: %w", err)
	}
	defer rows.Close()

	pizzas := []models.Pizza{}
	for rows.Next() {
		var p models.Pizza
		if err := rows.Scan(&p.ID, &p.Flavor, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan order pizza row: %w", err)
		}
		pizzas = append(pizzas, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	order.Pizzas = pizzas

	return nil
}

func (s *OrderStore) getPizzaIDs(ctx context.Context, orderID string) ([]string, error) {
	rows, err := s.db.Query(ctx, selectOrderPizzaIDsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order pizza ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pizza id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
