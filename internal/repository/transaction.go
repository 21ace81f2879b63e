// Package repository provides the in-memory data access layer for the
// simulator. Records live for the lifetime of the process only.
package repository

import (
	"sync"

	"github.com/mboya/payment-simulator/internal/models"
)

// ListFilter narrows List results. Zero-value fields match everything.
type ListFilter struct {
	Status models.TransactionStatus
	Method models.PaymentMethod
}

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	Insert(txn *models.Transaction) error
	Get(id string) (*models.Transaction, error)
	Update(id string, mutate func(*models.Transaction) error) (*models.Transaction, error)
	List(filter ListFilter) []*models.Transaction
	Clear()
}

// transactionRepository implements TransactionRepository over a mutex-guarded
// map. The single lock serializes every mutation, which gives the per-id
// update ordering that racing resolution paths rely on.
type transactionRepository struct {
	mu    sync.Mutex
	txns  map[string]*models.Transaction
	order []string
}

// NewTransactionRepository creates an empty in-memory TransactionRepository
func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{
		txns: make(map[string]*models.Transaction),
	}
}

// Insert stores a new transaction keyed by its id
func (r *transactionRepository) Insert(txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.txns[txn.ID]; exists {
		return models.ErrDuplicateTransaction
	}

	r.txns[txn.ID] = txn.Clone()
	r.order = append(r.order, txn.ID)
	return nil
}

// Get returns a copy of the transaction with the given id
func (r *transactionRepository) Get(id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.txns[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return txn.Clone(), nil
}

// Update applies mutate to the stored record under the repository lock and
// returns a copy of the result. If mutate returns an error the record is
// left unchanged.
func (r *transactionRepository) Update(id string, mutate func(*models.Transaction) error) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.txns[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	// Mutate a scratch copy so a failed mutation cannot leave the stored
	// record half-written.
	scratch := txn.Clone()
	if err := mutate(scratch); err != nil {
		return nil, err
	}

	r.txns[id] = scratch
	return scratch.Clone(), nil
}

// List returns copies of all matching transactions in insertion order
func (r *transactionRepository) List(filter ListFilter) []*models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Transaction, 0, len(r.order))
	for _, id := range r.order {
		txn := r.txns[id]
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		if filter.Method != "" && txn.Method != filter.Method {
			continue
		}
		result = append(result, txn.Clone())
	}
	return result
}

// Clear atomically replaces the backing map with an empty one. Updates
// scheduled against cleared ids fail with models.ErrNotFound.
func (r *transactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.txns = make(map[string]*models.Transaction)
	r.order = nil
}
