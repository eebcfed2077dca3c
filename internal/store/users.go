package store

import (
	"context"

	"bistro-api/internal/db"
	"bistro-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	c *mongo.Collection
}

func NewUserStore(d *db.DB) *UserStore {
	return &UserStore{c: d.Collection(db.UsersCollection)}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, u)
	return translate("insert user", err)
}

// FindByEmail returns apperr.ErrNotFound when no user has the address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate("find user by email", err)
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate("list users", err)
	}
	users := make([]*models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, translate("decode users", err)
	}
	return users, nil
}

func (s *UserStore) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return translate("update user role", err)
	}
	if res.MatchedCount == 0 {
		return translate("update user role", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.c.EstimatedDocumentCount(ctx)
	return n, translate("count users", err)
}

