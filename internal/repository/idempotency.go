package repository

import (
	"sync"

	"github.com/mboya/payment-simulator/internal/models"
)

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(key, requestPath string) (*models.IdempotencyKey, error)
	Store(idemKey *models.IdempotencyKey) error
	Clear()
}

type idempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]*models.IdempotencyKey
}

// NewIdempotencyRepository creates an empty in-memory IdempotencyRepository
func NewIdempotencyRepository() IdempotencyRepository {
	return &idempotencyRepository{
		keys: make(map[string]*models.IdempotencyKey),
	}
}

// Get returns the cached response for key and path, or nil when absent
func (r *idempotencyRepository) Get(key, requestPath string) (*models.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idemKey, ok := r.keys[cacheKey(key, requestPath)]
	if !ok {
		return nil, nil
	}
	copied := *idemKey
	return &copied, nil
}

// Store caches a response under key and path, overwriting any previous entry
func (r *idempotencyRepository) Store(idemKey *models.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *idemKey
	r.keys[cacheKey(idemKey.Key, idemKey.RequestPath)] = &copied
	return nil
}

// Clear drops all cached responses
func (r *idempotencyRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys = make(map[string]*models.IdempotencyKey)
}

func cacheKey(key, requestPath string) string {
	return key + "\x00" + requestPath
}
