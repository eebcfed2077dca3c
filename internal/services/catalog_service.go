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

const (
	DefaultShopPageSize = 6
	MaxPageSize         = 100
)

type CatalogService struct {
	products ProductStore
	reviews  ReviewStore
	logger   zerolog.Logger
}

func NewCatalogService(products ProductStore, reviews ReviewStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		reviews:  reviews,
		logger:   logger,
	}
}

// NewProductFilter builds a filter from optional query values: an empty
// category matches all products and a non-positive limit means no limit.
func NewProductFilter(category string, limit int64) models.ProductFilter {
	f := models.ProductFilter{Category: strings.TrimSpace(category)}
	if limit > 0 {
		f.Limit = min(limit, MaxPageSize)
	}
	return f
}

// Page converts a 1-based page number and page size into a filter.
func Page(category string, page, size int64) models.ProductFilter {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultShopPageSize
	}
	size = min(size, MaxPageSize)
	f := NewProductFilter(category, size)
	f.Skip = (page - 1) * size
	return f
}

func (s *CatalogService) ListProducts(ctx context.Context, f models.ProductFilter) ([]*models.Product, error) {
	products, err := s.products.List(ctx, f)
	if err != nil {
		s.logger.Error().Err(err).Str("category", f.Category).Msg("Error listing products")
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) CountProducts(ctx context.Context, category string) (int64, error) {
	return s.products.Count(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) AddProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = primitive.NilObjectID
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" || p.Category == "" {
		return nil, fmt.Errorf("name and category are required: %w", apperr.ErrInvalidInput)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return nil, fmt.Errorf("price must be a non-negative number: %w", apperr.ErrInvalidInput)
	}

	if err := s.products.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID.Hex()).Str("category", p.Category).Msg("Product added")
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", apperr.ErrInvalidInput)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", productID).Msg("Product deleted")
	return nil
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]*models.Review, error) {
	return s.reviews.List(ctx)
}
