package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mboya/payment-simulator/internal/config"
	"github.com/mboya/payment-simulator/internal/middleware"
	"github.com/mboya/payment-simulator/internal/repository"
	"github.com/mboya/payment-simulator/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	engine *service.Engine,
	idemKeys repository.IdempotencyRepository,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	handler := NewHandler(engine, engine, engine, idemKeys, logger)

	router := mux.NewRouter()
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/mpesa/stkpush", handler.InitiateSTKPush).Methods(http.MethodPost)
	api.HandleFunc("/mpesa/resolve", handler.ResolveSTKPush).Methods(http.MethodPost)
	api.HandleFunc("/bank/transfers", handler.InitiateBankTransfer).Methods(http.MethodPost)
	api.HandleFunc("/bank/resolve", handler.ResolveBankTransfer).Methods(http.MethodPost)
	api.HandleFunc("/transactions", handler.ListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}", handler.GetTransaction).Methods(http.MethodGet)
	api.HandleFunc("/simulator/reset", handler.Reset).Methods(http.MethodPost)

	var finalHandler http.Handler = router

	finalHandler = middleware.FailureInjection(&cfg.App, logger)(finalHandler)
	finalHandler = middleware.Idempotency(idemKeys, logger)(finalHandler)

	return finalHandler
}
