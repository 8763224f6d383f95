package order

import (
	"context"

	"pizzeria-system/internal/models"
	"pizzeria-system/internal/observer"
)

// CustomerStore resolves customer references
type CustomerStore interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}

// PizzaStore resolves pizza references
type PizzaStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Pizza, error)
}

// OrderStore persists orders
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	Update(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id string) (*models.Order, error)
}

// Notifier fans order lifecycle events out to registered listeners
type Notifier interface {
	Notify(order *models.Order, action observer.Action)
}
