package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mboya/payment-simulator/internal/config"
	"github.com/mboya/payment-simulator/internal/models"
	"github.com/mboya/payment-simulator/internal/repository"
)

// fakeDispatcher records deliveries and returns a canned result.
type fakeDispatcher struct {
	mu         sync.Mutex
	deliveries []fakeDelivery
	result     models.WebhookResult
}

type fakeDelivery struct {
	url     string
	payload any
}

func newFakeDispatcher() *fakeDispatcher {
	status := 200
	return &fakeDispatcher{
		result: models.WebhookResult{
			Delivered:   true,
			StatusCode:  &status,
			AttemptedAt: time.Now(),
		},
	}
}

func (f *fakeDispatcher) Deliver(_ context.Context, url string, payload any) models.WebhookResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, fakeDelivery{url: url, payload: payload})
	return f.result
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deliveries)
}

func testAppConfig() *config.AppConfig {
	return &config.AppConfig{
		SuccessRate:       1.0,
		MobilePushDelay:   10 * time.Millisecond,
		BankTransferDelay: 10 * time.Millisecond,
		WebhookTimeout:    time.Second,
	}
}

func newTestEngine(cfg *config.AppConfig, dispatcher WebhookDispatcher) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(
		repository.NewTransactionRepository(),
		dispatcher,
		cfg,
		logger,
		WithRand(rand.New(rand.NewSource(42))),
	)
}

func boolPtr(b bool) *bool {
	return &b
}

func listAll() repository.ListFilter {
	return repository.ListFilter{}
}
