// Package service implements the transaction simulation engine: initiation,
// asynchronous completion, and webhook notification of simulated payments.
package service

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mboya/payment-simulator/internal/config"
	"github.com/mboya/payment-simulator/internal/repository"
)

// Engine coordinates the transaction store, completion scheduler and webhook
// dispatcher, and owns the success-rate policy. Configuration is read-only
// after construction.
type Engine struct {
	repo       repository.TransactionRepository
	dispatcher WebhookDispatcher
	scheduler  *CompletionScheduler
	logger     *slog.Logger

	successRate float64
	mobileDelay time.Duration
	bankDelay   time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Engine at construction time
type Option func(*Engine)

// WithRand replaces the outcome random source, letting tests substitute a
// seeded generator for reproducible draws.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine creates an Engine wired to the given store and dispatcher
func NewEngine(
	repo repository.TransactionRepository,
	dispatcher WebhookDispatcher,
	cfg *config.AppConfig,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		repo:        repo,
		dispatcher:  dispatcher,
		logger:      logger,
		successRate: cfg.SuccessRate,
		mobileDelay: cfg.MobilePushDelay,
		bankDelay:   cfg.BankTransferDelay,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.scheduler = NewCompletionScheduler(e, logger)
	return e
}

// drawOutcome decides whether a resolution succeeds. A forced outcome
// bypasses the random draw entirely.
func (e *Engine) drawOutcome(forced *bool) bool {
	if forced != nil {
		return *forced
	}

	e.rngMu.Lock()
	roll := e.rng.Float64()
	e.rngMu.Unlock()

	return roll < e.successRate
}
