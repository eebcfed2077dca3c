package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistro-api/internal/apperr"
	"bistro-api/internal/gateway"
	"bistro-api/internal/metrics"
	"bistro-api/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService struct {
	payments PaymentStore
	carts    CartStore
	tx       TxRunner
	gateway  gateway.Gateway
	currency string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewOrderService(payments PaymentStore, carts CartStore, tx TxRunner, gw gateway.Gateway, currency string, logger zerolog.Logger) *OrderService {
	return &OrderService{
		payments: payments,
		carts:    carts,
		tx:       tx,
		gateway:  gw,
		currency: currency,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *OrderService) requestIntent(ctx context.Context, price float64) (*gateway.Intent, error) {
	amount, err := gateway.MinorUnits(price)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		metrics.GatewayErrors.WithLabelValues("create_intent").Inc()
		s.logger.Warn().Err(err).Int64("amount", amount).Msg("Payment intent failed")
		if !errors.Is(err, apperr.ErrGateway) {
			err = fmt.Errorf("%w: %v", apperr.ErrGateway, err)
		}
		return nil, err
	}
	return intent, nil
}

// CreatePaymentIntent returns the client secret the browser needs to collect
// card details. Nothing is persisted.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	intent, err := s.requestIntent(ctx, price)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// CommitOrder turns the caller's cart into a pending payment record and
// clears the cart entries it covers. The record is inserted before the cart
// entries are deleted; with a transactional store both happen atomically,
// otherwise a failed delete leaves the recorded payment in place.
//
// Concurrent commits over overlapping cart ids both succeed; each deletes
// whatever entries still exist when it gets there.
func (s *OrderService) CommitOrder(ctx context.Context, email string, req *models.CommitOrderRequest) (*models.CommitOrderResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("no authenticated email: %w", apperr.ErrUnauthenticated)
	}

	cartIDs, err := parseObjectIDs(req.CartItemIDs)
	if err != nil {
		return nil, fmt.Errorf("cartItems: %w", err)
	}
	menuIDs, err := parseObjectIDs(req.MenuItemIDs)
	if err != nil {
		return nil, fmt.Errorf("menuItems: %w", err)
	}

	intent, err := s.requestIntent(ctx, req.Price)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		Email:         email,
		Price:         req.Price,
		CartItemIDs:   cartIDs,
		MenuItemIDs:   menuIDs,
		TransactionID: intent.ID,
		Status:        models.PaymentStatusPending,
		CreatedAt:     s.now().UTC(),
	}

	var deleted int64
	inserted := false
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// A transactional store may retry the callback; start clean each time.
		payment.ID = primitive.NilObjectID
		inserted = false
		if err := s.payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		inserted = true

		n, err := s.carts.DeleteMany(ctx, cartIDs)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		if inserted {
			s.logger.Error().Err(err).
				Str("payment_id", payment.ID.Hex()).
				Str("email", email).
				Msg("Payment recorded but cart entries were not cleared")
		} else {
			s.logger.Error().Err(err).Str("email", email).Msg("Error recording payment")
		}
		if !errors.Is(err, apperr.ErrStore) {
			err = fmt.Errorf("%w: %v", apperr.ErrStore, err)
		}
		return nil, err
	}

	metrics.OrdersCommitted.Inc()
	metrics.CartEntriesCleared.Add(float64(deleted))

	s.logger.Info().
		Str("payment_id", payment.ID.Hex()).
		Str("email", email).
		Float64("price", payment.Price).
		Int("cart_items", len(cartIDs)).
		Int64("deleted", deleted).
		Msg("Order committed")

	return &models.CommitOrderResult{
		PaymentID:     payment.ID,
		DeletedCount:  deleted,
		TransactionID: intent.ID,
	}, nil
}

// MarkPaymentDone sets status "Done". Calling it on a payment that is already
// done succeeds without change.
func (s *OrderService) MarkPaymentDone(ctx context.Context, paymentID string) (*models.Payment, error) {
	id, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id: %w", apperr.ErrInvalidInput)
	}

	if err := s.payments.SetStatus(ctx, id, models.PaymentStatusDone); err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("payment_id", paymentID).Msg("Payment marked done")
	return payment, nil
}

// ListPayments returns the caller's own payment history, newest first.
func (s *OrderService) ListPayments(ctx context.Context, authEmail, requestedEmail string) ([]*models.Payment, error) {
	if NormalizeEmail(authEmail) != NormalizeEmail(requestedEmail) {
		return nil, fmt.Errorf("payment history of another user: %w", apperr.ErrForbidden)
	}
	return s.payments.ListByEmail(ctx, NormalizeEmail(authEmail))
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", h, apperr.ErrInvalidInput)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
