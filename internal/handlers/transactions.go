package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mboya/payment-simulator/internal/models"
	"github.com/mboya/payment-simulator/internal/repository"
)

type transactionResponse struct {
	Success     bool                `json:"success"`
	Transaction *models.Transaction `json:"transaction"`
}

type listResponse struct {
	Success      bool                  `json:"success"`
	Count        int                   `json:"count"`
	Transactions []*models.Transaction `json:"transactions"`
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetTransaction handles GET /api/v1/transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	txn, err := h.queries.GetStatus(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, transactionResponse{
		Success:     true,
		Transaction: txn,
	})
}

// ListTransactions handles GET /api/v1/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListFilter{
		Status: models.TransactionStatus(r.URL.Query().Get("status")),
		Method: models.PaymentMethod(r.URL.Query().Get("method")),
	}

	txns := h.queries.List(filter)

	h.writeJSON(w, http.StatusOK, listResponse{
		Success:      true,
		Count:        len(txns),
		Transactions: txns,
	})
}

// Reset handles POST /api/v1/simulator/reset
func (h *Handler) Reset(w http.ResponseWriter, _ *http.Request) {
	h.queries.Reset()
	h.idemKeys.Clear()

	h.writeJSON(w, http.StatusOK, resetResponse{
		Success: true,
		Message: "All transactions cleared",
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
