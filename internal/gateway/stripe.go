package gateway

import (
	"context"
	"errors"
	"fmt"

	"bistro-api/internal/apperr"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeGateway struct {
	api    *client.API
	logger zerolog.Logger
}

func NewStripeGateway(secretKey string, logger zerolog.Logger) *StripeGateway {
	return &StripeGateway{
		api:    client.New(secretKey, nil),
		logger: logger,
	}
}

// CreatePaymentIntent asks Stripe for a card PaymentIntent. Failures are not
// retried here; the caller restarts the whole flow with a fresh intent.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{PaymentMethodCard}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn().
				Str("code", string(stripeErr.Code)).
				Str("type", string(stripeErr.Type)).
				Int("http_status", stripeErr.HTTPStatusCode).
				Msg("Stripe rejected payment intent")
		} else {
			g.logger.Error().Err(err).Msg("Stripe request failed")
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
