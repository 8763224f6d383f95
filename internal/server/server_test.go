package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/observer"
	"pizzeria-system/internal/services/customer"
	"pizzeria-system/internal/services/order"
	"pizzeria-system/internal/services/pizza"
)

// In-memory stores mirroring the persistence gateway contract, including the
// id well-formedness check at the boundary.

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewValidationError("id", "is not a valid identifier")
	}
	return nil
}

type memCustomerStore struct {
	customers map[string]models.Customer
}

func (s *memCustomerStore) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	c := models.Customer{ID: uuid.New().String(), Name: req.Name, Table: req.Table}
	s.customers[c.ID] = c
	return &c, nil
}

func (s *memCustomerStore) GetAll(ctx context.Context) ([]models.Customer, error) {
	out := []models.Customer{}
	for _, c := range s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (s *memCustomerStore) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if c, ok := s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *memCustomerStore) Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Table != nil {
		c.Table = *req.Table
	}
	s.customers[id] = c
	return &c, nil
}

func (s *memCustomerStore) Delete(ctx context.Context, id string) (*models.Customer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	delete(s.customers, id)
	return &c, nil
}

type memPizzaStore struct {
	pizzas map[string]models.Pizza
}

func (s *memPizzaStore) Create(ctx context.Context, req *models.CreatePizzaRequest) (*models.Pizza, error) {
	p := models.Pizza{ID: uuid.New().String(), Flavor: req.Flavor, Description: req.Description, Price: req.Price}
	s.pizzas[p.ID] = p
	return &p, nil
}

func (s *memPizzaStore) GetAll(ctx context.Context) ([]models.Pizza, error) {
	out := []models.Pizza{}
	for _, p := range s.pizzas {
		out = append(out, p)
	}
	return out, nil
}

func (s *memPizzaStore) GetByID(ctx context.Context, id string) (*models.Pizza, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if p, ok := s.pizzas[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *memPizzaStore) GetByIDs(ctx context.Context, ids []string) ([]models.Pizza, error) {
	out := make([]models.Pizza, 0, len(ids))
	for _, id := range ids {
		if err := checkID(id); err != nil {
			return nil, err
		}
		p, ok := s.pizzas[id]
		if !ok {
			return nil, models.NewNotFoundError("pizza", id)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memPizzaStore) Update(ctx context.Context, id string, req *models.UpdatePizzaRequest) (*models.Pizza, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, ok := s.pizzas[id]
	if !ok {
		return nil, nil
	}
	if req.Flavor != nil {
		p.Flavor = *req.Flavor
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	s.pizzas[id] = p
	return &p, nil
}

func (s *memPizzaStore) Delete(ctx context.Context, id string) (*models.Pizza, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, ok := s.pizzas[id]
	if !ok {
		return nil, nil
	}
	delete(s.pizzas, id)
	return &p, nil
}

type memOrderStore struct {
	orders map[string]*models.Order
}

func (s *memOrderStore) Create(ctx context.Context, o *models.Order) error {
	o.ID = uuid.New().String()
	stored := *o
	s.orders[o.ID] = &stored
	return nil
}

func (s *memOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if o, ok := s.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, nil
}

func (s *memOrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrderStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	if err := checkID(customerID); err != nil {
		return nil, err
	}
	out := []models.Order{}
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrderStore) Update(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	if req.Customer != nil {
		o.CustomerID = *req.Customer
	}
	if req.Status != nil {
		o.Status = models.OrderStatus(*req.Status)
	}
	if req.Pizzas != nil {
		o.PizzaIDs = req.Pizzas
	}
	copied := *o
	return &copied, nil
}

func (s *memOrderStore) Delete(ctx context.Context, id string) (*models.Order, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	delete(s.orders, id)
	return o, nil
}

type okHealth struct{}

func (okHealth) Ping(ctx context.Context) error { return nil }

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	log := logger.New("test")

	customerStore := &memCustomerStore{customers: map[string]models.Customer{}}
	pizzaStore := &memPizzaStore{pizzas: map[string]models.Pizza{}}
	orderStore := &memOrderStore{orders: map[string]*models.Order{}}

	channel := observer.NewChannel(log)
	channel.Subscribe(observer.NewStatusLogger(log))

	handler := NewHandler(
		customer.NewService(customerStore),
		pizza.NewService(pizzaStore),
		order.NewService(customerStore, pizzaStore, orderStore, channel, log),
		okHealth{},
		log,
	)
	return handler.SetupRoutes()
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestCustomerCRUD(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/customers", map[string]interface{}{
		"name": "Alice", "table": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Customer
	decodeInto(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, 4, created.Table)

	rec = doJSON(t, mux, http.MethodGet, "/customers/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPut, "/customers/"+created.ID, map[string]interface{}{
		"table": 7,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Customer
	decodeInto(t, rec, &updated)
	assert.Equal(t, 7, updated.Table)

	rec = doJSON(t, mux, http.MethodDelete, "/customers/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/customers/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCustomer_MalformedID(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/customers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCustomer_MissingName(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/customers", map[string]interface{}{
		"table": 4,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/orders", map[string]interface{}{
		"customer": uuid.New().String(),
		"pizzas":   []string{uuid.New().String()},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_InvalidStatus(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/orders", map[string]interface{}{
		"customer": uuid.New().String(),
		"pizzas":   []string{uuid.New().String()},
		"status":   "Delivered",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderFlow(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/customers", map[string]interface{}{
		"name": "Bob", "table": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cust models.Customer
	decodeInto(t, rec, &cust)

	rec = doJSON(t, mux, http.MethodPost, "/pizzas", map[string]interface{}{
		"flavor": "Quattro Formaggi", "description": "four cheeses", "price": 10.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var pz models.Pizza
	decodeInto(t, rec, &pz)

	rec = doJSON(t, mux, http.MethodPost, "/orders", map[string]interface{}{
		"customer": cust.ID,
		"pizzas":   []string{pz.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Order
	decodeInto(t, rec, &created)
	assert.Equal(t, 10.50, created.TotalPrice)
	assert.Equal(t, models.StatusConfirming, created.Status)

	// Read-back keeps the captured total
	rec = doJSON(t, mux, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Order
	decodeInto(t, rec, &fetched)
	assert.Equal(t, 10.50, fetched.TotalPrice)

	// Invalid status enum is rejected
	rec = doJSON(t, mux, http.MethodPut, fmt.Sprintf("/orders/%s/status", created.ID), map[string]interface{}{
		"status": "Cancelled",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid status overwrite
	rec = doJSON(t, mux, http.MethodPut, fmt.Sprintf("/orders/%s/status", created.ID), map[string]interface{}{
		"status": "Preparing",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Order
	decodeInto(t, rec, &updated)
	assert.Equal(t, models.StatusPreparing, updated.Status)
	assert.Equal(t, 10.50, updated.TotalPrice)

	// Customer's orders come back with pizzas expanded
	rec = doJSON(t, mux, http.MethodGet, "/customers/"+cust.ID+"/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	decodeInto(t, rec, &orders)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Pizzas, 1)
	assert.Equal(t, pz.ID, orders[0].Pizzas[0].ID)
	assert.Equal(t, 10.50, orders[0].Pizzas[0].Price)
}

func TestGetCustomerOrders_NoOrders(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/customers", map[string]interface{}{
		"name": "Carol", "table": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cust models.Customer
	decodeInto(t, rec, &cust)

	rec = doJSON(t, mux, http.MethodGet, "/customers/"+cust.ID+"/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/orders/%s/status", uuid.New().String()), map[string]interface{}{
		"status": "Ready",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOrder_UnknownOrder(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodDelete, "/orders/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIDocument(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/swagger", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	decodeInto(t, rec, &doc)
	assert.Contains(t, doc, "openapi")
	assert.Contains(t, doc, "paths")
}

func TestHealthCheck(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
