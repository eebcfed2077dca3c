package services

import (
	"context"

	"bistro-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Data-access contracts. internal/store implements them on MongoDB and
// internal/store/memory in process.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) error
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error)
	Count(ctx context.Context, category string) (int64, error)
	Create(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewStore interface {
	List(ctx context.Context) ([]*models.Review, error)
}

type CartStore interface {
	Create(ctx context.Context, e *models.CartEntry) error
	ListByEmail(ctx context.Context, email string) ([]*models.CartEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID, email string) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Payment, error)
	Count(ctx context.Context) (int64, error)
}

// AnalyticsStore runs the fixed-shape reports over payments joined with
// products.
type AnalyticsStore interface {
	TotalRevenue(ctx context.Context) (float64, error)
	CategoryStats(ctx context.Context) ([]models.CategoryStat, error)
}

// TxRunner groups writes into one transaction where the store supports it.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
