// Package handlers implements the HTTP glue for the simulator API: it
// parses requests into engine calls and serializes engine results.
package handlers

import (
	"log/slog"

	"github.com/mboya/payment-simulator/internal/repository"
	"github.com/mboya/payment-simulator/internal/service"
)

// Handler exposes the simulation engine over HTTP
type Handler struct {
	mobile   service.MobilePayments
	bank     service.BankTransfers
	queries  service.TransactionQueries
	idemKeys repository.IdempotencyRepository
	logger   *slog.Logger
}

// NewHandler creates a new Handler with injected engine dependencies.
func NewHandler(
	mobile service.MobilePayments,
	bank service.BankTransfers,
	queries service.TransactionQueries,
	idemKeys repository.IdempotencyRepository,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		mobile:   mobile,
		bank:     bank,
		queries:  queries,
		idemKeys: idemKeys,
		logger:   logger,
	}
}
