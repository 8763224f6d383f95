package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria-system/internal/config"
	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/messaging"
	"pizzeria-system/internal/observer"
	"pizzeria-system/internal/server"
	"pizzeria-system/internal/services/customer"
	"pizzeria-system/internal/services/order"
	"pizzeria-system/internal/services/pizza"
	"pizzeria-system/internal/store"
)

func main() {
	var (
		mode       = flag.String("mode", "server", "Service mode (server, notification-subscriber)")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "server":
		if err := runServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runServer runs the HTTP API server
func runServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Notification channel: a status-logging listener always runs; the AMQP
	// bridge joins it when RabbitMQ is configured
	channel := observer.NewChannel(log)
	channel.Subscribe(observer.NewStatusLogger(log))

	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

		publisher := messaging.NewPublisher(conn, log)
		channel.Subscribe(messaging.NewEventListener(publisher))
	}

	customerStore := store.NewCustomerStore(db)
	pizzaStore := store.NewPizzaStore(db)
	orderStore := store.NewOrderStore(db)

	customerService := customer.NewService(customerStore)
	pizzaService := pizza.NewService(pizzaStore)
	orderService := order.NewService(customerStore, pizzaStore, orderStore, channel, log)

	handler := server.NewHandler(customerService, pizzaService, orderService, db, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Pizzeria server started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}

// runNotificationSubscriber consumes order lifecycle events from the
// notifications queue and logs them
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	consumer := messaging.NewConsumer(conn, log)

	return consumer.StartConsuming(ctx, func(ctx context.Context, body []byte) error {
		var event messaging.OrderEventMessage
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to parse notification: %w", err)
		}

		log.Info("notification_received", fmt.Sprintf("Order %s %s", event.OrderID, event.Action), "", map[string]interface{}{
			"order_id":    event.OrderID,
			"customer_id": event.CustomerID,
			"status":      event.Status,
			"total_price": event.TotalPrice,
			"action":      event.Action,
		})
		return nil
	})
}
