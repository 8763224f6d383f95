package observer

import (
	"sync"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
)

// Action labels an order lifecycle event
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// OrderListener receives order lifecycle events
type OrderListener interface {
	Update(order *models.Order, action Action) error
}

// Channel is a process-local publish/subscribe registry for order lifecycle
// events. Fan-out is synchronous and runs in subscription order. The registry
// is populated at startup and read-mostly afterwards.
type Channel struct {
	mu        sync.RWMutex
	listeners []OrderListener
	logger    *logger.Logger
}

// NewChannel creates a new notification channel
func NewChannel(log *logger.Logger) *Channel {
	return &Channel{logger: log}
}

// Subscribe registers a listener for order lifecycle events
func (c *Channel) Subscribe(listener OrderListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// Unsubscribe removes a previously registered listener
func (c *Channel) Unsubscribe(listener OrderListener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.listeners[:0]
	for _, l := range c.listeners {
		if l != listener {
			filtered = append(filtered, l)
		}
	}
	c.listeners = filtered
}

// Notify invokes every registered listener with the order and action. A
// failing listener is logged and the remaining listeners still run: the
// triggering write has already committed, so notification failures must never
// surface to the caller.
func (c *Channel) Notify(order *models.Order, action Action) {
	c.mu.RLock()
	listeners := make([]OrderListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, listener := range listeners {
		if err := listener.Update(order, action); err != nil {
			c.logger.Error("listener_failed", "Order listener failed", "", err, map[string]interface{}{
				"order_id": order.ID,
				"action":   string(action),
			})
		}
	}
}
