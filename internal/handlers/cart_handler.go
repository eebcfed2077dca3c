package handlers

import (
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/models"
	"bistro-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type CartHandler struct {
	cartService *services.CartService
	logger      zerolog.Logger
}

func NewCartHandler(cartService *services.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	entries, err := h.cartService.List(r.Context(), email, r.URL.Query().Get("email"))
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to list cart")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	var req models.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.cartService.Add(r.Context(), email, &req)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to add cart entry")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	if err := h.cartService.Remove(r.Context(), email, mux.Vars(r)["id"]); err != nil {
		respondWithAppError(w, h.logger, err, "Failed to remove cart entry")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cart entry removed"})
}
