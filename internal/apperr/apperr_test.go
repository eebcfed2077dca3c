package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bistro-api/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("verify: %w", apperr.ErrUnauthenticated), http.StatusUnauthorized},
		{fmt.Errorf("role: %w", apperr.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("register: %w", apperr.ErrConflict), http.StatusConflict},
		{fmt.Errorf("payment: %w", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("price: %w", apperr.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("intent: %w", apperr.ErrGateway), http.StatusBadGateway},
		{fmt.Errorf("insert: %w", apperr.ErrStore), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got, _ := apperr.HTTPStatus(tc.err)
		assert.Equal(t, tc.want, got, tc.err.Error())
	}
}

func TestPublicMessage_HidesInternals(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp 10.0.0.3:27017: i/o timeout", apperr.ErrStore)
	assert.Equal(t, "An internal error occurred", apperr.PublicMessage(err))

	err = fmt.Errorf("token is expired: %w", apperr.ErrUnauthenticated)
	assert.Equal(t, "unauthorized access", apperr.PublicMessage(err))

	err = fmt.Errorf("price must be positive: %w", apperr.ErrInvalidInput)
	assert.Equal(t, err.Error(), apperr.PublicMessage(err))
}
