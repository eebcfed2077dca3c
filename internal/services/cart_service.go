package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"bistro-api/internal/apperr"
	"bistro-api/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService struct {
	carts  CartStore
	logger zerolog.Logger
}

func NewCartService(carts CartStore, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:  carts,
		logger: logger,
	}
}

// List returns the caller's cart. No requested email yields an empty cart;
// asking for someone else's cart is forbidden.
func (s *CartService) List(ctx context.Context, authEmail, requestedEmail string) ([]*models.CartEntry, error) {
	if strings.TrimSpace(requestedEmail) == "" {
		return []*models.CartEntry{}, nil
	}
	if NormalizeEmail(authEmail) != NormalizeEmail(requestedEmail) {
		return nil, fmt.Errorf("cart of another user: %w", apperr.ErrForbidden)
	}
	return s.carts.ListByEmail(ctx, NormalizeEmail(authEmail))
}

func (s *CartService) Add(ctx context.Context, authEmail string, req *models.AddToCartRequest) (*models.CartEntry, error) {
	itemID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", apperr.ErrInvalidInput)
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price < 0 {
		return nil, fmt.Errorf("price must be a non-negative number: %w", apperr.ErrInvalidInput)
	}

	entry := &models.CartEntry{
		ItemID:   itemID,
		Email:    NormalizeEmail(authEmail),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Recipe:   req.Recipe,
		Image:    req.Image,
	}
	if err := s.carts.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Msg("Error adding cart entry")
		return nil, err
	}
	return entry, nil
}

func (s *CartService) Remove(ctx context.Context, authEmail, entryID string) error {
	id, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return fmt.Errorf("invalid cart entry id: %w", apperr.ErrInvalidInput)
	}
	return s.carts.Delete(ctx, id, NormalizeEmail(authEmail))
}
