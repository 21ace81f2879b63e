package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment moves money
type PaymentMethod string

const (
	MethodMobilePush   PaymentMethod = "mobile_push"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"

	// TransactionStatusCancelled mirrors the provider's status set but no
	// simulator code path currently produces it.
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// WebhookResult records the outcome of a single webhook delivery attempt
type WebhookResult struct {
	AttemptedAt time.Time `json:"attempted_at"`
	Error       string    `json:"error,omitempty"`
	StatusCode  *int      `json:"status_code,omitempty"`
	Delivered   bool      `json:"delivered"`
}

// Transaction is a simulated payment held in the store
type Transaction struct {
	InitiatedAt       time.Time         `json:"initiated_at"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
	ResultCode        *int              `json:"result_code,omitempty"`
	WebhookResult     *WebhookResult    `json:"webhook_result,omitempty"`
	ID                string            `json:"id"`
	Method            PaymentMethod     `json:"method"`
	Status            TransactionStatus `json:"status"`
	PhoneNumber       string            `json:"phone_number,omitempty"`
	AccountNumber     string            `json:"account_number,omitempty"`
	BankCode          string            `json:"bank_code,omitempty"`
	Reference         string            `json:"reference"`
	Description       string            `json:"description"`
	MerchantRequestID string            `json:"merchant_request_id,omitempty"`
	CheckoutRequestID string            `json:"checkout_request_id,omitempty"`
	ResultDescription string            `json:"result_description,omitempty"`
	Receipt           string            `json:"receipt,omitempty"`
	BankReference     string            `json:"bank_reference,omitempty"`
	CallbackURL       string            `json:"callback_url,omitempty"`
	Amount            decimal.Decimal   `json:"amount"`
	WebhookSent       bool              `json:"webhook_sent"`
}

// Terminal reports whether the transaction has reached a final state.
// Terminal transactions accept no further resolution.
func (t *Transaction) Terminal() bool {
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// Clone returns a copy safe to hand out of the store while the original
// remains subject to mutation under the store lock.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.ResultCode != nil {
		code := *t.ResultCode
		c.ResultCode = &code
	}
	if t.WebhookResult != nil {
		wr := *t.WebhookResult
		if t.WebhookResult.StatusCode != nil {
			sc := *t.WebhookResult.StatusCode
			wr.StatusCode = &sc
		}
		c.WebhookResult = &wr
	}
	return &c
}
