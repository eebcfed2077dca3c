package services

import (
	"context"

	"bistro-api/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context, category string) (int64, error)
}

type AnalyticsService struct {
	users     counter
	products  productCounter
	payments  counter
	analytics AnalyticsStore
	logger    zerolog.Logger
}

func NewAnalyticsService(users UserStore, products ProductStore, payments PaymentStore, analytics AnalyticsStore, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		users:     users,
		products:  products,
		payments:  payments,
		analytics: analytics,
		logger:    logger,
	}
}

// AdminStats gathers the dashboard counters concurrently. Revenue over an
// empty payment collection is 0.
func (s *AnalyticsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.analytics.TotalRevenue(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UserCount, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ProductCount, err = s.products.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.OrderCount, err = s.payments.Count(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute admin stats")
		return nil, err
	}
	return &stats, nil
}

// OrderStats reports quantity and revenue per product category. Each menu
// item reference in a payment counts once; references to products that no
// longer exist are left out of every group.
func (s *AnalyticsService) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	stats, err := s.analytics.CategoryStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute order stats")
		return nil, err
	}
	if stats == nil {
		stats = []models.CategoryStat{}
	}
	return stats, nil
}
