package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/logger"
)

// maxRequestBodySize bounds every JSON request body
const maxRequestBodySize = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSONBody decodes a size-limited request body into v
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps domain errors to status codes. Anything unexpected
// is logged and reported as a 500 with the given message.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, message string) {
	var validationErr domain.ValidationError
	var templateNotFound *domain.ErrTemplateNotFound
	var sessionNotFound *domain.ErrSessionNotFound

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &templateNotFound):
		WriteJSONError(w, "Signature template not found", http.StatusNotFound)
	case errors.As(err, &sessionNotFound):
		WriteJSONError(w, "Builder session not found", http.StatusNotFound)
	default:
		log.WithField("error", err.Error()).Error(message)
		WriteJSONError(w, message, http.StatusInternalServerError)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
