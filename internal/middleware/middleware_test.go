package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bistro-api/internal/apperr"
	"bistro-api/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-0123456789"

type stubVerifier struct {
	calls atomic.Int64
}

func (v *stubVerifier) ValidateToken(token string) (*services.Claims, error) {
	v.calls.Add(1)
	return nil, errors.New("should not be called")
}

type stubResolver struct {
	admins map[string]bool
	err    error
	calls  atomic.Int64
}

func (s *stubResolver) IsAdmin(ctx context.Context, email string) (bool, error) {
	s.calls.Add(1)
	if s.err != nil {
		return false, s.err
	}
	return s.admins[email], nil
}

func echoEmail() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := GetUserEmail(r)
		w.Write([]byte(email))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthentication(t *testing.T) {
	auth := services.NewAuthService(testSecret, zerolog.Nop())
	other := services.NewAuthService("another-secret-0123456789abcdef", zerolog.Nop())

	valid, err := auth.GenerateToken("a@x.com", "A")
	require.NoError(t, err)
	foreign, err := other.GenerateToken("a@x.com", "A")
	require.NoError(t, err)

	h := Authentication(auth, zerolog.Nop())(echoEmail())

	t.Run("valid token exposes email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a@x.com", rec.Body.String())
	})

	rejected := map[string]string{
		"wrong key":   "Bearer " + foreign,
		"garbage":     "Bearer not.a.token",
		"no scheme":   valid,
		"basic":       "Basic " + valid,
		"extra parts": "Bearer " + valid + " x",
	}
	var bodies []string
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}
	for _, b := range bodies {
		assert.Equal(t, bodies[0], b, "all failures share one body")
	}
}

func TestAuthentication_MissingHeaderSkipsVerify(t *testing.T) {
	v := &stubVerifier{}
	h := Authentication(v, zerolog.Nop())(echoEmail())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, v.calls.Load())
	body := decodeError(t, rec)
	assert.Equal(t, "unauthorized", body.Error)
	assert.Equal(t, apperr.ErrUnauthenticated.Error(), body.Message)
}

func withEmail(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserEmailKey, email))
}

func TestRequireAdmin(t *testing.T) {
	resolver := &stubResolver{admins: map[string]bool{"boss@x.com": true}}
	h := RequireAdmin(resolver, zerolog.Nop())(echoEmail())

	tests := []struct {
		email string
		want  int
	}{
		{"boss@x.com", http.StatusOK},
		{"cust@x.com", http.StatusForbidden},
		{"ghost@x.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withEmail(httptest.NewRequest(http.MethodGet, "/", nil), tt.email))
		assert.Equal(t, tt.want, rec.Code, tt.email)
	}
	assert.EqualValues(t, 3, resolver.calls.Load(), "resolved once per request")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_StoreFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("connection refused")}
	h := RequireAdmin(resolver, zerolog.Nop())(echoEmail())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withEmail(httptest.NewRequest(http.MethodGet, "/", nil), "boss@x.com"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestTimeout(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := Timeout(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), deadline, time.Second)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	h := rl.Middleware()(echoEmail())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, rec).Error)
}

func TestRequestLogging_RequestID(t *testing.T) {
	var seen string
	h := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

func TestErrorHandling_RecoversPanic(t *testing.T) {
	h := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error)
}

func TestRequestValidation(t *testing.T) {
	h := RequestValidation()(echoEmail())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://bistro.example"})(echoEmail())

	req := httptest.NewRequest(http.MethodOptions, "/payments", nil)
	req.Header.Set("Origin", "https://bistro.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://bistro.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders()(echoEmail()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
