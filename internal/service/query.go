package service

import (
	"fmt"

	"github.com/mboya/payment-simulator/internal/models"
	"github.com/mboya/payment-simulator/internal/repository"
)

// GetStatus returns the full transaction record for id
func (e *Engine) GetStatus(id string) (*models.Transaction, error) {
	txn, err := e.repo.Get(id)
	if err != nil {
		return nil, &ServiceError{
			Err:     err,
			Code:    ErrCodeTransactionNotFound,
			Message: fmt.Sprintf("transaction %s not found", id),
		}
	}
	return txn, nil
}

// List returns all transactions matching the filter in insertion order
func (e *Engine) List(filter repository.ListFilter) []*models.Transaction {
	return e.repo.List(filter)
}

// Reset purges every transaction. Scheduled resolutions that fire after the
// reset fail against the empty store and are logged by the scheduler.
func (e *Engine) Reset() {
	e.repo.Clear()
	e.logger.Info("simulator reset, all transactions purged")
}

// Drain blocks until all outstanding scheduled resolutions have finished.
func (e *Engine) Drain() {
	e.scheduler.Wait()
}
