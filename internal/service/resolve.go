package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mboya/payment-simulator/internal/idgen"
	"github.com/mboya/payment-simulator/internal/models"
)

// Provider result codes and descriptions used on resolution.
const (
	mobileResultCodeSuccess = 0
	mobileResultCodeFailure = 1032

	mobileResultDescSuccess = "The service request is processed successfully."
	mobileResultDescFailure = "Request cancelled by user"

	bankResultCodeSuccess = 0
	bankResultCodeFailure = 1

	bankResultDescSuccess = "Transfer completed successfully"
	bankResultDescFailure = "Insufficient funds"
)

// Resolve transitions a pending or processing transaction to its terminal
// state and, if a callback URL was supplied at initiation, delivers the
// webhook and records the delivery outcome. Both the scheduler and manual
// resolution go through here; the store's serialized update guarantees
// exactly one of two racing calls wins, the other failing with the
// already-resolved error.
func (e *Engine) Resolve(ctx context.Context, id string, forced *bool) (*models.Transaction, error) {
	resolved, err := e.repo.Update(id, func(txn *models.Transaction) error {
		if txn.Terminal() {
			return models.ErrAlreadyResolved
		}

		success := e.drawOutcome(forced)
		now := time.Now()
		txn.CompletedAt = &now

		switch txn.Method {
		case models.MethodMobilePush:
			resolveMobile(txn, success)
		case models.MethodBankTransfer:
			resolveBank(txn, success)
		default:
			return fmt.Errorf("unknown payment method %q", txn.Method)
		}
		return nil
	})
	if err != nil {
		return nil, mapResolveError(id, err)
	}

	e.logger.Info("transaction resolved",
		"transaction_id", resolved.ID,
		"method", resolved.Method,
		"status", resolved.Status,
	)

	if resolved.CallbackURL == "" {
		return resolved, nil
	}

	return e.notifyCallback(ctx, resolved)
}

func resolveMobile(txn *models.Transaction, success bool) {
	if success {
		code := mobileResultCodeSuccess
		txn.Status = models.TransactionStatusCompleted
		txn.ResultCode = &code
		txn.ResultDescription = mobileResultDescSuccess
		txn.Receipt = idgen.Receipt()
		return
	}

	code := mobileResultCodeFailure
	txn.Status = models.TransactionStatusFailed
	txn.ResultCode = &code
	txn.ResultDescription = mobileResultDescFailure
}

func resolveBank(txn *models.Transaction, success bool) {
	if success {
		code := bankResultCodeSuccess
		txn.Status = models.TransactionStatusCompleted
		txn.ResultCode = &code
		txn.ResultDescription = bankResultDescSuccess
		txn.BankReference = idgen.BankReference()
		return
	}

	code := bankResultCodeFailure
	txn.Status = models.TransactionStatusFailed
	txn.ResultCode = &code
	txn.ResultDescription = bankResultDescFailure
}

// notifyCallback delivers the outcome webhook and records the delivery
// result onto the transaction. Delivery failure never fails the resolution;
// the transaction keeps its terminal state either way.
func (e *Engine) notifyCallback(ctx context.Context, resolved *models.Transaction) (*models.Transaction, error) {
	var payload any
	switch resolved.Method {
	case models.MethodBankTransfer:
		payload = models.BankResultFromTransaction(resolved)
	default:
		payload = models.STKCallbackFromTransaction(resolved)
	}

	result := e.dispatcher.Deliver(ctx, resolved.CallbackURL, payload)

	recorded, err := e.repo.Update(resolved.ID, func(txn *models.Transaction) error {
		txn.WebhookSent = true
		txn.WebhookResult = &result
		return nil
	})
	if err != nil {
		// The store was reset between resolution and recording; the
		// delivery already happened, nothing left to annotate.
		e.logger.Warn("transaction vanished before webhook result was recorded",
			"transaction_id", resolved.ID,
			"error", err,
		)
		resolved.WebhookSent = true
		resolved.WebhookResult = &result
		return resolved, nil
	}

	return recorded, nil
}

func mapResolveError(id string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &ServiceError{
			Err:     err,
			Code:    ErrCodeTransactionNotFound,
			Message: fmt.Sprintf("transaction %s not found", id),
		}
	case errors.Is(err, models.ErrAlreadyResolved):
		return &ServiceError{
			Err:     err,
			Code:    ErrCodeAlreadyResolved,
			Message: fmt.Sprintf("transaction %s is already in a terminal state", id),
		}
	default:
		return &ServiceError{
			Err:     err,
			Code:    ErrCodeInternalError,
			Message: "failed to resolve transaction",
		}
	}
}
