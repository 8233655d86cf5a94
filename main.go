package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"nodefit/internal/app"
	"nodefit/internal/config"
	"nodefit/internal/database"
	"nodefit/internal/services"
	"nodefit/pkg/logger"
	"nodefit/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zl.Warn("failed to close database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Events ---
	var events services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zl.Named("rabbitmq"))
		if err != nil {
			zl.Warn("events disabled, RabbitMQ is unreachable", zap.Error(err))
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	application := app.New(app.Options{
		Config:     cfg,
		DB:         db,
		Events:     events,
		Logger:     zl,
		RequestLog: true,
	})

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	application.Services.Session.Init(initCtx)
	cancelInit()

	// --- Start HTTP Server ---
	zl.Info("starting server", zap.String("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zl.Info("shutting down server")
	if err := application.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("error during Fiber shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
}
