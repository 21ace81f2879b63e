package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mboya/payment-simulator/internal/idgen"
	"github.com/mboya/payment-simulator/internal/models"
	"github.com/shopspring/decimal"
)

const (
	mobileIDPrefix = "MP"

	defaultAccountReference = "TEST"
	defaultDescription      = "Payment"
)

// STKPushRequest carries the parameters of a mobile push initiation.
// ForceSuccess overrides the random outcome draw; AutoComplete schedules
// resolution after the configured delay.
type STKPushRequest struct {
	ForceSuccess     *bool
	PhoneNumber      string
	AccountReference string
	Description      string
	CallbackURL      string
	Amount           decimal.Decimal
	AutoComplete     bool
}

// InitiateSTKPush creates a mobile push transaction in the pending state and
// returns it immediately. Resolution happens later, either on the scheduled
// path or through ResolveSTKPush.
func (e *Engine) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*models.Transaction, error) {
	if err := validateSTKPushRequest(req); err != nil {
		return nil, err
	}

	if req.AccountReference == "" {
		req.AccountReference = defaultAccountReference
	}
	if req.Description == "" {
		req.Description = defaultDescription
	}

	txn := &models.Transaction{
		ID:                idgen.TransactionID(mobileIDPrefix),
		Method:            models.MethodMobilePush,
		Status:            models.TransactionStatusPending,
		Amount:            req.Amount,
		PhoneNumber:       req.PhoneNumber,
		Reference:         req.AccountReference,
		Description:       req.Description,
		CallbackURL:       req.CallbackURL,
		MerchantRequestID: idgen.MerchantRequestID(),
		CheckoutRequestID: idgen.CheckoutRequestID(),
		InitiatedAt:       time.Now(),
	}

	if err := e.repo.Insert(txn); err != nil {
		return nil, &ServiceError{
			Err:     err,
			Code:    ErrCodeInternalError,
			Message: fmt.Sprintf("failed to store transaction: %v", err),
		}
	}

	e.logger.Info("stk push initiated",
		"transaction_id", txn.ID,
		"phone_number", txn.PhoneNumber,
		"amount", txn.Amount,
		"auto_complete", req.AutoComplete,
	)

	if req.AutoComplete {
		e.scheduler.Schedule(txn.ID, e.mobileDelay, req.ForceSuccess)
	}

	return txn, nil
}

// ResolveSTKPush manually resolves a mobile push transaction and returns the
// provider callback envelope describing the outcome.
func (e *Engine) ResolveSTKPush(ctx context.Context, id string, forced *bool) (*models.STKCallbackEnvelope, error) {
	txn, err := e.repo.Get(id)
	if err != nil {
		return nil, mapResolveError(id, err)
	}
	if txn.Method != models.MethodMobilePush {
		return nil, &ServiceError{
			Code:    ErrCodeMethodMismatch,
			Message: fmt.Sprintf("transaction %s is not a mobile push payment", id),
		}
	}

	resolved, err := e.Resolve(ctx, id, forced)
	if err != nil {
		return nil, err
	}

	return models.STKCallbackFromTransaction(resolved), nil
}

func validateSTKPushRequest(req STKPushRequest) error {
	if err := ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidPhoneNumber,
			Message: err.Error(),
		}
	}

	if err := ValidateAmount(req.Amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	if err := ValidateCallbackURL(req.CallbackURL); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidCallbackURL,
			Message: err.Error(),
		}
	}

	return nil
}
