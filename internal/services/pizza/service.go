package pizza

import (
	"context"

	"pizzeria-system/internal/models"
)

// Store persists pizzas
type Store interface {
	Create(ctx context.Context, req *models.CreatePizzaRequest) (*models.Pizza, error)
	GetAll(ctx context.Context) ([]models.Pizza, error)
	GetByID(ctx context.Context, id string) (*models.Pizza, error)
	Update(ctx context.Context, id string, req *models.UpdatePizzaRequest) (*models.Pizza, error)
	Delete(ctx context.Context, id string) (*models.Pizza, error)
}

// Service provides pizza CRUD over the store
type Service struct {
	store Store
}

// NewService creates a new pizza service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePizza validates and persists a new pizza
func (s *Service) CreatePizza(ctx context.Context, req *models.CreatePizzaRequest) (*models.Pizza, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, req)
}

// ListPizzas returns every pizza
func (s *Service) ListPizzas(ctx context.Context) ([]models.Pizza, error) {
	return s.store.GetAll(ctx)
}

// GetPizza returns the pizza with the given id
func (s *Service) GetPizza(ctx context.Context, id string) (*models.Pizza, error) {
	pizza, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, models.NewNotFoundError("pizza", id)
	}
	return pizza, nil
}

// UpdatePizza applies a partial update. Totals captured by past orders are
// not re-derived from the new price.
func (s *Service) UpdatePizza(ctx context.Context, id string, req *models.UpdatePizzaRequest) (*models.Pizza, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pizza, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, models.NewNotFoundError("pizza", id)
	}
	return pizza, nil
}

// DeletePizza removes the pizza. Orders referencing it keep the raw reference.
func (s *Service) DeletePizza(ctx context.Context, id string) (*models.Pizza, error) {
	pizza, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, models.NewNotFoundError("pizza", id)
	}
	return pizza, nil
}
