package repository

import (
	"testing"
	"time"

	"github.com/mboya/payment-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepository_StoreAndGet(t *testing.T) {
	repo := NewIdempotencyRepository()

	missing, err := repo.Get("key-1", "/api/v1/mpesa/stkpush")
	require.NoError(t, err)
	assert.Nil(t, missing)

	idemKey := &models.IdempotencyKey{
		Key:            "key-1",
		RequestPath:    "/api/v1/mpesa/stkpush",
		ResponseStatus: 200,
		ResponseBody:   `{"success":true}`,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.Store(idemKey))

	got, err := repo.Get("key-1", "/api/v1/mpesa/stkpush")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, idemKey.ResponseBody, got.ResponseBody)
	assert.Equal(t, 200, got.ResponseStatus)

	// Same key on a different path is a distinct entry.
	other, err := repo.Get("key-1", "/api/v1/bank/transfers")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestIdempotencyRepository_Clear(t *testing.T) {
	repo := NewIdempotencyRepository()

	require.NoError(t, repo.Store(&models.IdempotencyKey{
		Key:         "key-1",
		RequestPath: "/api/v1/mpesa/stkpush",
	}))

	repo.Clear()

	got, err := repo.Get("key-1", "/api/v1/mpesa/stkpush")
	require.NoError(t, err)
	assert.Nil(t, got)
}
