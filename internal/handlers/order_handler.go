package handlers

import (
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/models"
	"bistro-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type OrderHandler struct {
	orderService *services.OrderService
	logger       zerolog.Logger
}

func NewOrderHandler(orderService *services.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	secret, err := h.orderService.CreatePaymentIntent(r.Context(), req.Price)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Payment intent failed")
		return
	}

	respondWithJSON(w, http.StatusOK, models.PaymentIntentResponse{ClientSecret: secret})
}

// CommitOrder handles POST /payments. The payment is always recorded under
// the authenticated email.
func (h *OrderHandler) CommitOrder(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	var req models.CommitOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.orderService.CommitOrder(r.Context(), email, &req)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Order commit failed")
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

func (h *OrderHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
		return
	}

	payments, err := h.orderService.ListPayments(r.Context(), email, mux.Vars(r)["email"])
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to list payments")
		return
	}

	respondWithJSON(w, http.StatusOK, payments)
}

func (h *OrderHandler) MarkPaymentDone(w http.ResponseWriter, r *http.Request) {
	payment, err := h.orderService.MarkPaymentDone(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to update payment status")
		return
	}

	respondWithJSON(w, http.StatusOK, payment)
}
