package store

import (
	"context"

	"bistro-api/internal/db"
	"bistro-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductStore struct {
	c *mongo.Collection
}

func NewProductStore(d *db.DB) *ProductStore {
	return &ProductStore{c: d.Collection(db.ProductsCollection)}
}

// categoryFilter matches every product when category is empty.
func categoryFilter(category string) bson.M {
	if category == "" {
		return bson.M{}
	}
	return bson.M{"category": category}
}

func (s *ProductStore) List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error) {
	opts := options.Find()
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := s.c.Find(ctx, categoryFilter(f.Category), opts)
	if err != nil {
		return nil, translate("list products", err)
	}
	products := make([]*models.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, translate("decode products", err)
	}
	return products, nil
}

func (s *ProductStore) Count(ctx context.Context, category string) (int64, error) {
	if category == "" {
		n, err := s.c.EstimatedDocumentCount(ctx)
		return n, translate("count products", err)
	}
	n, err := s.c.CountDocuments(ctx, categoryFilter(category))
	return n, translate("count products", err)
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, p)
	return translate("insert product", err)
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete product", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete product", mongo.ErrNoDocuments)
	}
	return nil
}

type ReviewStore struct {
	c *mongo.Collection
}

func NewReviewStore(d *db.DB) *ReviewStore {
	return &ReviewStore{c: d.Collection(db.ReviewsCollection)}
}

func (s *ReviewStore) List(ctx context.Context) ([]*models.Review, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate("list reviews", err)
	}
	reviews := make([]*models.Review, 0)
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, translate("decode reviews", err)
	}
	return reviews, nil
}
