package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/observer"
)

// Service implements the order workflow: reference resolution, total price
// capture, persistence and lifecycle notification.
type Service struct {
	customers CustomerStore
	pizzas    PizzaStore
	orders    OrderStore
	notifier  Notifier
	logger    *logger.Logger
}

// NewService creates a new order workflow service
func NewService(customers CustomerStore, pizzas PizzaStore, orders OrderStore, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		customers: customers,
		pizzas:    pizzas,
		orders:    orders,
		notifier:  notifier,
		logger:    log,
	}
}

// CreateOrder resolves the customer and pizza references, captures the total
// price from the resolved pizzas' current prices, persists the order and
// notifies listeners. Nothing is persisted when any reference fails to resolve.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := models.StatusConfirming
	if req.Status != "" {
		status, _ = models.ParseOrderStatus(req.Status)
	}

	// The two resolutions are read-only and independent
	var (
		customer *models.Customer
		pizzas   []models.Pizza
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.customers.GetByID(gctx, req.Customer)
		if err != nil {
			return err
		}
		if c == nil {
			return models.NewNotFoundError("customer", req.Customer)
		}
		customer = c
		return nil
	})
	g.Go(func() error {
		p, err := s.pizzas.GetByIDs(gctx, req.Pizzas)
		if err != nil {
			return err
		}
		pizzas = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total float64
	for _, p := range pizzas {
		total += p.Price
	}

	order := &models.Order{
		CustomerID: customer.ID,
		PizzaIDs:   req.Pizzas,
		Status:     status,
		TotalPrice: total,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	order.Customer = customer
	order.Pizzas = pizzas

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"total_price": order.TotalPrice,
	})

	// The write has committed; listeners run after, never before
	s.notifier.Notify(order, observer.ActionCreated)

	return order, nil
}

// GetOrder returns the order with customer and pizzas resolved
func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", id)
	}
	return order, nil
}

// ListOrders returns every order with customers and pizzas resolved
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

// UpdateOrder applies a partial update. The status, when present, must be one
// of the enumerated values. The captured total price is not recomputed, even
// when the pizza list changes.
func (s *Service) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Customer != nil {
		if _, err := uuid.Parse(*req.Customer); err != nil {
			return nil, models.NewValidationError("customer", "is not a valid identifier")
		}
	}
	for _, pizzaID := range req.Pizzas {
		if _, err := uuid.Parse(pizzaID); err != nil {
			return nil, models.NewValidationError("pizzas", "contains an invalid identifier")
		}
	}

	order, err := s.orders.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", id)
	}

	s.logger.Info("order_updated", "Order updated", requestID, map[string]interface{}{
		"order_id": order.ID,
		"status":   string(order.Status),
	})

	s.notifier.Notify(order, observer.ActionUpdated)

	return order, nil
}

// UpdateOrderStatus overwrites the order's status with one of the enumerated
// values. Transitions are not forced to be sequential.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.UpdateOrder(ctx, id, &models.UpdateOrderRequest{Status: &req.Status}, requestID)
}

// DeleteOrder removes the order and notifies listeners with the deleted record
func (s *Service) DeleteOrder(ctx context.Context, id string, requestID string) (*models.Order, error) {
	order, err := s.orders.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", id)
	}

	s.logger.Info("order_deleted", "Order deleted", requestID, map[string]interface{}{
		"order_id": order.ID,
	})

	s.notifier.Notify(order, observer.ActionDeleted)

	return order, nil
}

// GetCustomerOrders returns every order referencing the customer, each with
// its pizza references expanded into full records. A customer with no orders
// yields an empty list. An order whose pizza reference no longer resolves is
// skipped and logged rather than failing the whole aggregation.
func (s *Service) GetCustomerOrders(ctx context.Context, customerID, requestID string) ([]models.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Per-order expansion is read-only and order-independent
	expanded := make([]*models.Order, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	for i := range orders {
		g.Go(func() error {
			pizzas, err := s.pizzas.GetByIDs(gctx, orders[i].PizzaIDs)
			if err != nil {
				var notFound *models.NotFoundError
				if errors.As(err, &notFound) {
					dangling := &models.DanglingReferenceError{
						Kind:    notFound.Kind,
						ID:      notFound.ID,
						OrderID: orders[i].ID,
					}
					s.logger.Error("dangling_reference", "Skipping order with dangling pizza reference",
						requestID, dangling, map[string]interface{}{
							"order_id": orders[i].ID,
							"pizza_id": notFound.ID,
						})
					return nil
				}
				return err
			}
			orders[i].Pizzas = pizzas
			expanded[i] = &orders[i]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := []models.Order{}
	for _, o := range expanded {
		if o != nil {
			result = append(result, *o)
		}
	}

	return result, nil
}
