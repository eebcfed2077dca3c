// Package gateway talks to the external card payment processor. The rest of
// the system sees only Gateway: an amount in, a client-usable handle out.
package gateway

import (
	"context"
	"fmt"
	"math"

	"bistro-api/internal/apperr"
)

// PaymentMethodCard is the only method class requested from the processor.
const PaymentMethodCard = "card"

type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// MinorUnits converts a price in major units (e.g. dollars) to the integer
// minor units (cents) the processor charges, rounding half away from zero.
func MinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("price must be a positive number: %w", apperr.ErrInvalidInput)
	}
	amount := math.Round(price * 100)
	if amount < 1 || amount > math.MaxInt64/2 {
		return 0, fmt.Errorf("price out of range: %w", apperr.ErrInvalidInput)
	}
	return int64(amount), nil
}
