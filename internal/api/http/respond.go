package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
)

// envelope is the uniform response body: data on success, a message on failure.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Message: messageFor(err, status)})
}

func statusFor(err error) int {
	var validationErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError
	var transitionErr *domain.InvalidTransitionError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmptyCart),
		errors.As(err, &validationErr),
		errors.As(err, &transitionErr):
		return http.StatusBadRequest
	case errors.As(err, &stockErr),
		errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internal detail on 500s; client errors echo the cause.
func messageFor(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
