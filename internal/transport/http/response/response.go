// Package response writes JSON bodies for the HTTP handlers.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
)

// ErrorBody is the body of every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// StatusOf maps an error category to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case apperr.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a single user facing message.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	message := apperr.Message(err)
	if status == http.StatusInternalServerError && !errors.Is(err, apperr.ErrPersistence) {
		message = http.StatusText(status)
	}

	JSON(w, status, ErrorBody{Success: false, Message: message})
}

// BadRequest writes a 400 with message, for input the handler could not decode.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Success: false, Message: message})
}
