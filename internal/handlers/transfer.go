package handlers

import (
	"net/http"

	"github.com/mboya/payment-simulator/internal/service"
	"github.com/shopspring/decimal"
)

type transferRequest struct {
	AutoComplete  *bool           `json:"auto_complete"`
	ForceSuccess  *bool           `json:"force_success"`
	AccountNumber string          `json:"account_number"`
	BankCode      string          `json:"bank_code"`
	Reference     string          `json:"reference"`
	Narration     string          `json:"narration"`
	CallbackURL   string          `json:"callback_url"`
	Amount        decimal.Decimal `json:"amount"`
}

type transferResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// InitiateBankTransfer handles POST /api/v1/bank/transfers
func (h *Handler) InitiateBankTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	txn, err := h.bank.InitiateBankTransfer(r.Context(), service.TransferRequest{
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Amount:        req.Amount,
		Reference:     req.Reference,
		Narration:     req.Narration,
		CallbackURL:   req.CallbackURL,
		AutoComplete:  autoComplete(req.AutoComplete),
		ForceSuccess:  req.ForceSuccess,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, transferResponse{
		Success:       true,
		Message:       "Bank transfer initiated",
		TransactionID: txn.ID,
		Status:        string(txn.Status),
	})
}

// ResolveBankTransfer handles POST /api/v1/bank/resolve
func (h *Handler) ResolveBankTransfer(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.TransactionID == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "transaction_id is required")
		return
	}

	result, err := h.bank.ResolveBankTransfer(r.Context(), req.TransactionID, req.ForceSuccess)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
