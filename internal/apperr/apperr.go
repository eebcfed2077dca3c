// Package apperr defines the error taxonomy shared by stores, services and
// handlers. Lower layers wrap one of the sentinels with fmt.Errorf("...: %w")
// and the HTTP layer maps it to a status code with HTTPStatus.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
	ErrConflict        = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrGateway         = errors.New("payment gateway error")
	ErrStore           = errors.New("data store error")
)

// HTTPStatus returns the status code and short error code for err.
// Anything outside the taxonomy is treated as an internal error.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ErrGateway):
		return http.StatusBadGateway, "gateway_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// PublicMessage returns the message safe to show a client. Internal failures
// are not echoed back.
func PublicMessage(err error) string {
	status, _ := HTTPStatus(err)
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated.Error()
	case http.StatusInternalServerError:
		return "An internal error occurred"
	case http.StatusBadGateway:
		return "Payment gateway is unavailable or rejected the request"
	}
	return err.Error()
}
