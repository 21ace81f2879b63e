package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidPhoneNumber   = "invalid_phone_number"
	ErrCodeInvalidAmount        = "invalid_amount"
	ErrCodeInvalidAccountNumber = "invalid_account_number"
	ErrCodeInvalidBankCode      = "invalid_bank_code"
	ErrCodeInvalidCallbackURL   = "invalid_callback_url"
	ErrCodeTransactionNotFound  = "transaction_not_found"
	ErrCodeAlreadyResolved      = "transaction_already_resolved"
	ErrCodeMethodMismatch       = "method_mismatch"
	ErrCodeInternalError        = "internal_error"
)
