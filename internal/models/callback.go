package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// STKCallbackEnvelope is the provider-style payload shape delivered for
// mobile push resolutions, both as the manual-resolution response and as
// the webhook body POSTed to the callback URL.
type STKCallbackEnvelope struct {
	Body STKCallbackBody `json:"Body"`
}

// STKCallbackBody wraps the callback per the provider envelope.
type STKCallbackBody struct {
	STKCallback STKCallback `json:"stkCallback"`
}

// STKCallback carries the resolution outcome of a mobile push payment.
type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

// CallbackMetadata is present only on successful mobile resolutions.
type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem is a single name/value pair of callback metadata.
type CallbackItem struct {
	Value any    `json:"Value,omitempty"`
	Name  string `json:"Name"`
}

// BankTransferResult is the payload shape for bank transfer resolutions,
// returned from manual resolution and POSTed to the callback URL.
type BankTransferResult struct {
	Success       bool            `json:"success"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	BankReference string          `json:"bank_reference,omitempty"`
	Message       string          `json:"message"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
}

// STKCallbackFromTransaction builds the provider envelope for a resolved
// mobile push transaction.
func STKCallbackFromTransaction(t *Transaction) *STKCallbackEnvelope {
	resultCode := 0
	if t.ResultCode != nil {
		resultCode = *t.ResultCode
	}

	callback := STKCallback{
		MerchantRequestID: t.MerchantRequestID,
		CheckoutRequestID: t.CheckoutRequestID,
		ResultCode:        resultCode,
		ResultDesc:        t.ResultDescription,
	}

	if t.Status == TransactionStatusCompleted {
		callback.CallbackMetadata = &CallbackMetadata{
			Item: []CallbackItem{
				{Name: "Amount", Value: t.Amount.InexactFloat64()},
				{Name: "MpesaReceiptNumber", Value: t.Receipt},
				{Name: "TransactionDate", Value: transactionDate(t)},
				{Name: "PhoneNumber", Value: t.PhoneNumber},
			},
		}
	}

	return &STKCallbackEnvelope{
		Body: STKCallbackBody{STKCallback: callback},
	}
}

// BankResultFromTransaction builds the bank payload for a resolved bank
// transfer transaction.
func BankResultFromTransaction(t *Transaction) *BankTransferResult {
	result := &BankTransferResult{
		Success:       t.Status == TransactionStatusCompleted,
		TransactionID: t.ID,
		Status:        string(t.Status),
		BankReference: t.BankReference,
		AccountNumber: t.AccountNumber,
		Amount:        t.Amount,
		Reference:     t.Reference,
	}

	if result.Success {
		result.Message = "Transfer completed successfully"
	} else {
		result.Message = t.ResultDescription
	}

	return result
}

// transactionDate renders the completion time in the provider's compact
// YYYYMMDDHHMMSS numeric form.
func transactionDate(t *Transaction) int64 {
	at := t.InitiatedAt
	if t.CompletedAt != nil {
		at = *t.CompletedAt
	}
	n, _ := strconv.ParseInt(at.Format("20060102150405"), 10, 64)
	return n
}
