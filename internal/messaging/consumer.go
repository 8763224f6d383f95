package messaging

import (
	"context"
	"fmt"

	"pizzeria-system/internal/logger"
)

// MessageHandler processes a single consumed message body
type MessageHandler func(ctx context.Context, body []byte) error

// Consumer handles message consumption from the notifications queue
type Consumer struct {
	conn   *Connection
	logger *logger.Logger
}

// NewConsumer creates a new message consumer
func NewConsumer(conn *Connection, log *logger.Logger) *Consumer {
	return &Consumer{
		conn:   conn,
		logger: log,
	}
}

// StartConsuming consumes messages from the notifications queue until the
// context is cancelled, invoking the handler for each delivery. Messages are
// acked after handling; a handler error nacks without requeue.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	deliveries, err := c.conn.Channel().Consume(
		NotificationsQueue, // queue
		"",                 // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			if err := handler(ctx, delivery.Body); err != nil {
				c.logger.Error("message_handling_failed", "Failed to handle message", "", err, nil)
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
	}
}

// Close closes the underlying connection
func (c *Consumer) Close() error {
	return c.conn.Close()
}
