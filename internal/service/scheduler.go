package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// CompletionScheduler resolves transactions in the background after a
// per-method delay, mimicking provider-side processing latency. Each
// scheduled resolution runs in its own goroutine behind an error boundary:
// whatever happens to one task, the process and the other tasks continue.
type CompletionScheduler struct {
	resolver Resolver
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewCompletionScheduler creates a scheduler that resolves through resolver
func NewCompletionScheduler(resolver Resolver, logger *slog.Logger) *CompletionScheduler {
	return &CompletionScheduler{
		resolver: resolver,
		logger:   logger,
	}
}

// Schedule starts a background task that resolves the transaction after
// delay. It returns immediately. Once scheduled, a task runs to completion;
// a transaction that was manually resolved or swept away by a reset in the
// meantime makes the task fail harmlessly.
func (s *CompletionScheduler) Schedule(id string, delay time.Duration, forced *bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled resolution panicked",
					"transaction_id", id,
					"panic", r,
				)
			}
		}()

		time.Sleep(delay)

		if _, err := s.resolver.Resolve(context.Background(), id, forced); err != nil {
			s.logScheduledFailure(id, err)
		}
	}()
}

// Wait blocks until every scheduled resolution has finished. Intended for
// tests and shutdown draining.
func (s *CompletionScheduler) Wait() {
	s.wg.Wait()
}

func (s *CompletionScheduler) logScheduledFailure(id string, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case ErrCodeAlreadyResolved:
			// Benign: manual resolution won the race.
			s.logger.Debug("scheduled resolution lost race to manual resolution",
				"transaction_id", id,
			)
			return
		case ErrCodeTransactionNotFound:
			// Benign: the store was reset while the task slept.
			s.logger.Debug("transaction gone before scheduled resolution",
				"transaction_id", id,
			)
			return
		}
	}

	s.logger.Error("scheduled resolution failed",
		"transaction_id", id,
		"error", err,
	)
}
