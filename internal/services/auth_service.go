package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bistro-api/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// TokenTTL is the fixed validity window of an identity token. Tokens cannot
// be revoked before they expire.
const TokenTTL = time.Hour

type AuthService struct {
	secretKey []byte
	logger    zerolog.Logger
	now       func() time.Time
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func NewAuthService(secretKey string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		secretKey: []byte(secretKey),
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateToken signs the email (and optional display name) with an expiry
// of TokenTTL from now.
func (s *AuthService) GenerateToken(email, name string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("email is required: %w", apperr.ErrInvalidInput)
	}

	now := s.now()
	claims := &Claims{
		Email: email,
		Name:  strings.TrimSpace(name),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating token")
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks signature, algorithm and expiry. Every failure wraps
// apperr.ErrUnauthenticated so callers cannot tell the causes apart.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token: %w", apperr.ErrUnauthenticated)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthenticated)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email claim: %w", apperr.ErrUnauthenticated)
	}

	return claims, nil
}

// NormalizeEmail is applied wherever an address is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
