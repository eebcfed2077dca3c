package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"bistro-api/internal/apperr"
	"bistro-api/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users  UserStore
	logger zerolog.Logger
}

func NewUserService(users UserStore, logger zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Register creates a customer. A second registration with the same email is
// rejected with apperr.ErrConflict; the store's unique index closes the race
// between the lookup and the insert.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperr.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", apperr.ErrInvalidInput)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("user already exists: %w", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("user already exists: %w", apperr.ErrConflict)
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Str("email", user.Email).Msg("User registered successfully")
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	return users, nil
}

// IsAdmin resolves the stored role for email. An unknown user is not an
// admin. The lookup hits the store on every call so a promotion takes
// effect on the next request.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error resolving user role")
		return false, err
	}
	return user.IsAdmin(), nil
}

// CheckAdmin answers "am I an admin" for the authenticated caller. Asking
// about any other address yields false without touching the store.
func (s *UserService) CheckAdmin(ctx context.Context, authEmail, requestedEmail string) (bool, error) {
	if NormalizeEmail(authEmail) != NormalizeEmail(requestedEmail) {
		return false, nil
	}
	return s.IsAdmin(ctx, authEmail)
}

func (s *UserService) PromoteToAdmin(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", apperr.ErrInvalidInput)
	}

	if err := s.users.SetRole(ctx, id, models.RoleAdmin); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Error updating user role")
		}
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("new_role", string(models.RoleAdmin)).Msg("User role updated")
	return nil
}
