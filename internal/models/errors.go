package models

import "errors"

// Domain errors that can be returned by the repository layer
var (
	// ErrDuplicateTransaction indicates a transaction with the same id already exists
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrNotFound indicates the requested transaction was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyResolved indicates a resolution attempt on a terminal transaction
	ErrAlreadyResolved = errors.New("transaction already resolved")
)
