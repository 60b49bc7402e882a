package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/staybook/backend/pkg/errors"
)

const unexpectedErrorMessage = "An unexpected error occurred"

type messageResponse struct {
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	if message == "" {
		message = unexpectedErrorMessage
	}
	respondWithJSON(w, statusCode, messageResponse{Message: message})
}

// respondWithBadRequest answers 400 whatever the error type
func respondWithBadRequest(w http.ResponseWriter, err error) {
	respondWithError(w, http.StatusBadRequest, apperrors.Message(err))
}

// respondWithAppError answers 404 for missing resources and 400 for everything else
func respondWithAppError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		status = http.StatusNotFound
	}
	respondWithError(w, status, apperrors.Message(err))
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request payload")
	}
	return nil
}

// queryInt reads a non-negative integer query parameter, returning 0 when absent
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, apperrors.NewValidationError("invalid " + name + " parameter")
	}
	return value, nil
}
