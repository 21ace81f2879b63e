package service

import (
	"context"
	"testing"

	"github.com/mboya/payment-simulator/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateBankTransfer(t *testing.T) {
	e := newTestEngine(testAppConfig(), newFakeDispatcher())

	txn, err := e.InitiateBankTransfer(context.Background(), TransferRequest{
		AccountNumber: "0123456789",
		BankCode:      "063",
		Amount:        decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^BT[0-9A-F]{12}$`, txn.ID)
	assert.Equal(t, models.MethodBankTransfer, txn.Method)
	assert.Equal(t, models.TransactionStatusProcessing, txn.Status)
	assert.Equal(t, "0123456789", txn.AccountNumber)
	assert.Equal(t, "063", txn.BankCode)
	assert.Empty(t, txn.CheckoutRequestID, "bank transfers carry no checkout id")
	assert.Equal(t, "TEST", txn.Reference)
	assert.Equal(t, "Payment", txn.Description)
}

func TestInitiateBankTransfer_Validation(t *testing.T) {
	e := newTestEngine(testAppConfig(), newFakeDispatcher())

	tests := []struct {
		name     string
		req      TransferRequest
		wantCode string
	}{
		{
			name: "missing account number",
			req: TransferRequest{
				BankCode: "063",
				Amount:   decimal.NewFromInt(5000),
			},
			wantCode: ErrCodeInvalidAccountNumber,
		},
		{
			name: "account number too short",
			req: TransferRequest{
				AccountNumber: "123",
				BankCode:      "063",
				Amount:        decimal.NewFromInt(5000),
			},
			wantCode: ErrCodeInvalidAccountNumber,
		},
		{
			name: "missing bank code",
			req: TransferRequest{
				AccountNumber: "0123456789",
				Amount:        decimal.NewFromInt(5000),
			},
			wantCode: ErrCodeInvalidBankCode,
		},
		{
			name: "zero amount",
			req: TransferRequest{
				AccountNumber: "0123456789",
				BankCode:      "063",
			},
			wantCode: ErrCodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.InitiateBankTransfer(context.Background(), tt.req)
			require.Error(t, err)

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.wantCode, svcErr.Code)
		})
	}

	assert.Empty(t, e.List(listAll()))
}

func TestResolveBankTransfer(t *testing.T) {
	e := newTestEngine(testAppConfig(), newFakeDispatcher())

	txn, err := e.InitiateBankTransfer(context.Background(), TransferRequest{
		AccountNumber: "0123456789",
		BankCode:      "063",
		Amount:        decimal.NewFromInt(5000),
		Reference:     "INV-42",
	})
	require.NoError(t, err)

	result, err := e.ResolveBankTransfer(context.Background(), txn.ID, boolPtr(true))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, txn.ID, result.TransactionID)
	assert.Equal(t, string(models.TransactionStatusCompleted), result.Status)
	assert.NotEmpty(t, result.BankReference)
	assert.Equal(t, "0123456789", result.AccountNumber)
	assert.Equal(t, "INV-42", result.Reference)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(5000)))
}

func TestResolveBankTransfer_Failure(t *testing.T) {
	e := newTestEngine(testAppConfig(), newFakeDispatcher())

	txn, err := e.InitiateBankTransfer(context.Background(), TransferRequest{
		AccountNumber: "0123456789",
		BankCode:      "063",
		Amount:        decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	result, err := e.ResolveBankTransfer(context.Background(), txn.ID, boolPtr(false))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, string(models.TransactionStatusFailed), result.Status)
	assert.Empty(t, result.BankReference)
	assert.Equal(t, "Insufficient funds", result.Message)
}

func TestResolveBankTransfer_MethodMismatch(t *testing.T) {
	e := newTestEngine(testAppConfig(), newFakeDispatcher())

	txn, err := e.InitiateSTKPush(context.Background(), STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = e.ResolveBankTransfer(context.Background(), txn.ID, nil)
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrCodeMethodMismatch, svcErr.Code)
}
