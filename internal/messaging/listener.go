package messaging

import (
	"context"
	"time"

	"pizzeria-system/internal/models"
	"pizzeria-system/internal/observer"
)

// OrderEventMessage is the wire shape of an order lifecycle event
type OrderEventMessage struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventListener bridges the in-process notification channel to RabbitMQ,
// republishing every order lifecycle event to the notifications fanout
// exchange. It is a subscriber like any other: a failed publish is reported
// to the channel, which logs it and keeps going.
type EventListener struct {
	publisher *Publisher
}

// NewEventListener creates a new AMQP-bridging order listener
func NewEventListener(publisher *Publisher) *EventListener {
	return &EventListener{publisher: publisher}
}

// Update implements observer.OrderListener
func (l *EventListener) Update(order *models.Order, action observer.Action) error {
	message := &OrderEventMessage{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Action:     string(action),
		Timestamp:  time.Now().UTC(),
	}

	return l.publisher.PublishNotification(context.Background(), message)
}
