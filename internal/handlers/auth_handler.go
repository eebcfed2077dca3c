package handlers

import (
	"net/http"

	"bistro-api/internal/models"
	"bistro-api/internal/services"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

func NewAuthHandler(authService *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// IssueToken handles POST /jwt. The caller's claims are signed as given;
// identity is established by the client-side sign-in that precedes it.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.authService.GenerateToken(req.Email, req.Name)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Token generation failed")
		return
	}

	respondWithJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
