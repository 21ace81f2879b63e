package handlers

import (
	"net/http"

	"github.com/mboya/payment-simulator/internal/service"
	"github.com/shopspring/decimal"
)

type stkPushRequest struct {
	AutoComplete     *bool           `json:"auto_complete"`
	ForceSuccess     *bool           `json:"force_success"`
	PhoneNumber      string          `json:"phone_number"`
	AccountReference string          `json:"account_reference"`
	Description      string          `json:"description"`
	CallbackURL      string          `json:"callback_url"`
	Amount           decimal.Decimal `json:"amount"`
}

type stkPushResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	TransactionID     string `json:"transaction_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
	Status            string `json:"status"`
}

type resolveRequest struct {
	ForceSuccess  *bool  `json:"force_success"`
	TransactionID string `json:"transaction_id"`
}

// InitiateSTKPush handles POST /api/v1/mpesa/stkpush
func (h *Handler) InitiateSTKPush(w http.ResponseWriter, r *http.Request) {
	var req stkPushRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	txn, err := h.mobile.InitiateSTKPush(r.Context(), service.STKPushRequest{
		PhoneNumber:      req.PhoneNumber,
		Amount:           req.Amount,
		AccountReference: req.AccountReference,
		Description:      req.Description,
		CallbackURL:      req.CallbackURL,
		AutoComplete:     autoComplete(req.AutoComplete),
		ForceSuccess:     req.ForceSuccess,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stkPushResponse{
		Success:           true,
		Message:           "STK push initiated, awaiting customer PIN entry",
		TransactionID:     txn.ID,
		CheckoutRequestID: txn.CheckoutRequestID,
		Status:            string(txn.Status),
	})
}

// ResolveSTKPush handles POST /api/v1/mpesa/resolve
func (h *Handler) ResolveSTKPush(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.TransactionID == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "transaction_id is required")
		return
	}

	envelope, err := h.mobile.ResolveSTKPush(r.Context(), req.TransactionID, req.ForceSuccess)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope)
}
