package observer

import (
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
)

// StatusLogger logs every order lifecycle event. It is subscribed at startup
// so each create/update/delete leaves a structured trace.
type StatusLogger struct {
	logger *logger.Logger
}

// NewStatusLogger creates a new status logging listener
func NewStatusLogger(log *logger.Logger) *StatusLogger {
	return &StatusLogger{logger: log}
}

// Update implements OrderListener
func (s *StatusLogger) Update(order *models.Order, action Action) error {
	s.logger.Info("order_"+string(action), "Order "+string(action), "", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"status":      string(order.Status),
		"total_price": order.TotalPrice,
	})
	return nil
}
