package store

import (
	"context"

	"bistro-api/internal/db"
	"bistro-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartStore struct {
	c *mongo.Collection
}

func NewCartStore(d *db.DB) *CartStore {
	return &CartStore{c: d.Collection(db.CartsCollection)}
}

func (s *CartStore) Create(ctx context.Context, e *models.CartEntry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, e)
	return translate("insert cart entry", err)
}

func (s *CartStore) ListByEmail(ctx context.Context, email string) ([]*models.CartEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, translate("list cart", err)
	}
	entries := make([]*models.CartEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, translate("decode cart", err)
	}
	return entries, nil
}

// Delete removes one entry owned by email.
func (s *CartStore) Delete(ctx context.Context, id primitive.ObjectID, email string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "email": email})
	if err != nil {
		return translate("delete cart entry", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete cart entry", mongo.ErrNoDocuments)
	}
	return nil
}

// DeleteMany removes whichever of ids still exist and reports how many did.
func (s *CartStore) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, translate("delete cart entries", err)
	}
	return res.DeletedCount, nil
}
