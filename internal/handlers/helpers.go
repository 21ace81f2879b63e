package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mboya/payment-simulator/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// writeServiceError maps engine error codes to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected error", "error", err)
		h.writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	h.writeError(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case service.ErrCodeAlreadyResolved:
		return http.StatusConflict
	case service.ErrCodeInvalidPhoneNumber,
		service.ErrCodeInvalidAmount,
		service.ErrCodeInvalidAccountNumber,
		service.ErrCodeInvalidBankCode,
		service.ErrCodeInvalidCallbackURL,
		service.ErrCodeMethodMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	defer func() {
		_ = r.Body.Close()
	}()
	return json.NewDecoder(r.Body).Decode(v)
}

// autoComplete defaults to true when the field is absent from the request.
func autoComplete(field *bool) bool {
	if field == nil {
		return true
	}
	return *field
}
