package gateway

import (
	"errors"
	"math"
	"testing"

	"bistro-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		0.01:  1,
		0.5:   50,
		19.99: 1999,
		42:    4200,
	}
	for price, want := range cases {
		got, err := MinorUnits(price)
		require.NoError(t, err, "price %v", price)
		assert.Equal(t, want, got, "price %v", price)
	}
}

func TestMinorUnits_Rejects(t *testing.T) {
	for _, price := range []float64{0, -1, 0.004, math.NaN(), math.Inf(1), 1e300} {
		_, err := MinorUnits(price)
		assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "price %v", price)
	}
}
