package customer

import (
	"context"

	"pizzeria-system/internal/models"
)

// Store persists customers
type Store interface {
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id string) (*models.Customer, error)
}

// Service provides customer CRUD over the store
type Service struct {
	store Store
}

// NewService creates a new customer service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateCustomer validates and persists a new customer
func (s *Service) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, req)
}

// ListCustomers returns every customer
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.GetAll(ctx)
}

// GetCustomer returns the customer with the given id
func (s *Service) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, models.NewNotFoundError("customer", id)
	}
	return customer, nil
}

// UpdateCustomer applies a partial update
func (s *Service) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	customer, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, models.NewNotFoundError("customer", id)
	}
	return customer, nil
}

// DeleteCustomer removes the customer. Existing orders keep their reference:
// deletion does not cascade.
func (s *Service) DeleteCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, models.NewNotFoundError("customer", id)
	}
	return customer, nil
}
