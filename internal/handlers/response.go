package handlers

import (
	"encoding/json"
	"net/http"

	"bistro-api/internal/apperr"

	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithAppError maps err through the apperr taxonomy. Server-side
// failures are logged; their detail never reaches the client.
func respondWithAppError(w http.ResponseWriter, logger zerolog.Logger, err error, msg string) {
	code, errorCode := apperr.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(msg)
	}
	respondWithError(w, code, errorCode, apperr.PublicMessage(err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}
