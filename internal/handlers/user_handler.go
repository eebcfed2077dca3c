package handlers

import (
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/models"
	"bistro-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewUserHandler(userService *services.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Registration failed")
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to list users")
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

// CheckAdmin handles GET /users/admin/{email}. Asking about anyone but
// yourself answers false.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	admin, err := h.userService.CheckAdmin(r.Context(), email, mux.Vars(r)["email"])
	if err != nil {
		respondWithAppError(w, h.logger, err, "Admin check failed")
		return
	}

	respondWithJSON(w, http.StatusOK, models.AdminCheckResponse{Admin: admin})
}

func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.PromoteToAdmin(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondWithAppError(w, h.logger, err, "Failed to promote user")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User role updated"})
}
