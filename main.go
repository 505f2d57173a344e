package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"mesto/internal/config"
	"mesto/internal/database"
	"mesto/internal/logger"
	"mesto/internal/server"
	"mesto/internal/services"
	"mesto/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	deps := server.Deps{Config: cfg, DB: db, Logger: zlog}

	// --- RabbitMQ (optional) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: services.EventsExchange}, zlog)
		if err != nil {
			zlog.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		deps.Events = mqClient

		if err := mqClient.ConsumeEvents(logEvent(zlog)); err != nil {
			zlog.Error("Failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	app := server.New(deps)

	// --- Start HTTP Server ---
	addr := cfg.ListenAddr()
	zlog.Info("Starting server", zap.String("addr", addr), zap.Bool("production", cfg.Production))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(addr); err != nil {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		zlog.Error("Error during Fiber shutdown", zap.Error(err))
	}

	zlog.Info("Server gracefully stopped")
}

// logEvent returns a consumer that writes every activity event to the log.
func logEvent(zlog *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return err
		}
		zlog.Info("activity event",
			zap.String("type", event.Type),
			zap.String("user_id", event.UserID),
			zap.String("card_id", event.CardID),
			zap.Time("occurred_at", event.OccurredAt))
		return nil
	}
}
