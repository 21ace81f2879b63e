package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mboya/payment-simulator/internal/config"
	"github.com/mboya/payment-simulator/internal/handlers"
	"github.com/mboya/payment-simulator/internal/repository"
	"github.com/mboya/payment-simulator/internal/service"
	"github.com/mboya/payment-simulator/internal/webhook"
)

func main() {
	// A local .env is optional; real deployments configure via environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment simulator",
		"port", cfg.Server.Port,
		"success_rate", cfg.App.SuccessRate,
		"log_level", cfg.Logger.Level,
	)

	transactions := repository.NewTransactionRepository()
	idemKeys := repository.NewIdempotencyRepository()
	dispatcher := webhook.NewDispatcher(cfg.App.WebhookTimeout, logger)
	engine := service.NewEngine(transactions, dispatcher, &cfg.App, logger)

	router := handlers.NewRouter(engine, idemKeys, cfg, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Let in-flight scheduled resolutions finish their logging.
	engine.Drain()

	logger.Info("server stopped")
}
