package service

import (
	"context"

	"github.com/mboya/payment-simulator/internal/models"
	"github.com/mboya/payment-simulator/internal/repository"
)

// WebhookDispatcher delivers a payload to a callback URL and reports the
// outcome without failing.
type WebhookDispatcher interface {
	Deliver(ctx context.Context, url string, payload any) models.WebhookResult
}

// Resolver finalizes a pending or processing transaction.
type Resolver interface {
	Resolve(ctx context.Context, id string, forced *bool) (*models.Transaction, error)
}

// MobilePayments handles STK push payment operations
type MobilePayments interface {
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (*models.Transaction, error)
	ResolveSTKPush(ctx context.Context, id string, forced *bool) (*models.STKCallbackEnvelope, error)
}

// BankTransfers handles bank transfer operations
type BankTransfers interface {
	InitiateBankTransfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)
	ResolveBankTransfer(ctx context.Context, id string, forced *bool) (*models.BankTransferResult, error)
}

// TransactionQueries exposes read and reset operations over the store
type TransactionQueries interface {
	GetStatus(id string) (*models.Transaction, error)
	List(filter repository.ListFilter) []*models.Transaction
	Reset()
}

// Ensure the engine implements the operation interfaces
var (
	_ Resolver           = (*Engine)(nil)
	_ MobilePayments     = (*Engine)(nil)
	_ BankTransfers      = (*Engine)(nil)
	_ TransactionQueries = (*Engine)(nil)
)
