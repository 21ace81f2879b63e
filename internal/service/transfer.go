package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mboya/payment-simulator/internal/idgen"
	"github.com/mboya/payment-simulator/internal/models"
	"github.com/shopspring/decimal"
)

const bankIDPrefix = "BT"

// TransferRequest carries the parameters of a bank transfer initiation.
type TransferRequest struct {
	ForceSuccess  *bool
	AccountNumber string
	BankCode      string
	Reference     string
	Narration     string
	CallbackURL   string
	Amount        decimal.Decimal
	AutoComplete  bool
}

// InitiateBankTransfer creates a bank transfer transaction in the processing
// state and returns it immediately.
func (e *Engine) InitiateBankTransfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if err := validateTransferRequest(req); err != nil {
		return nil, err
	}

	if req.Reference == "" {
		req.Reference = defaultAccountReference
	}
	if req.Narration == "" {
		req.Narration = defaultDescription
	}

	txn := &models.Transaction{
		ID:            idgen.TransactionID(bankIDPrefix),
		Method:        models.MethodBankTransfer,
		Status:        models.TransactionStatusProcessing,
		Amount:        req.Amount,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Reference:     req.Reference,
		Description:   req.Narration,
		CallbackURL:   req.CallbackURL,
		InitiatedAt:   time.Now(),
	}

	if err := e.repo.Insert(txn); err != nil {
		return nil, &ServiceError{
			Err:     err,
			Code:    ErrCodeInternalError,
			Message: fmt.Sprintf("failed to store transaction: %v", err),
		}
	}

	e.logger.Info("bank transfer initiated",
		"transaction_id", txn.ID,
		"account_number", txn.AccountNumber,
		"bank_code", txn.BankCode,
		"amount", txn.Amount,
		"auto_complete", req.AutoComplete,
	)

	if req.AutoComplete {
		e.scheduler.Schedule(txn.ID, e.bankDelay, req.ForceSuccess)
	}

	return txn, nil
}

// ResolveBankTransfer manually resolves a bank transfer transaction and
// returns the bank result payload describing the outcome.
func (e *Engine) ResolveBankTransfer(ctx context.Context, id string, forced *bool) (*models.BankTransferResult, error) {
	txn, err := e.repo.Get(id)
	if err != nil {
		return nil, mapResolveError(id, err)
	}
	if txn.Method != models.MethodBankTransfer {
		return nil, &ServiceError{
			Code:    ErrCodeMethodMismatch,
			Message: fmt.Sprintf("transaction %s is not a bank transfer", id),
		}
	}

	resolved, err := e.Resolve(ctx, id, forced)
	if err != nil {
		return nil, err
	}

	return models.BankResultFromTransaction(resolved), nil
}

func validateTransferRequest(req TransferRequest) error {
	if err := ValidateAccountNumber(req.AccountNumber); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAccountNumber,
			Message: err.Error(),
		}
	}

	if err := ValidateBankCode(req.BankCode); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidBankCode,
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
