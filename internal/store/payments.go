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

type PaymentStore struct {
	c *mongo.Collection
}

func NewPaymentStore(d *db.DB) *PaymentStore {
	return &PaymentStore{c: d.Collection(db.PaymentsCollection)}
}

func (s *PaymentStore) Create(ctx context.Context, p *models.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, p)
	return translate("insert payment", err)
}

// SetStatus matches on id only, so setting the current status again is a
// successful no-op.
func (s *PaymentStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return translate("update payment status", err)
	}
	if res.MatchedCount == 0 {
		return translate("update payment status", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *PaymentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var p models.Payment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate("find payment", err)
	}
	return &p, nil
}

func (s *PaymentStore) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, translate("list payments", err)
	}
	payments := make([]*models.Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, translate("decode payments", err)
	}
	return payments, nil
}

func (s *PaymentStore) Count(ctx context.Context) (int64, error) {
	n, err := s.c.EstimatedDocumentCount(ctx)
	return n, translate("count payments", err)
}

// RevenuePipeline sums price over every payment into a single row.
func RevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

// TotalRevenue returns 0 when there are no payments: the group stage then
// yields no row at all.
func (s *PaymentStore) TotalRevenue(ctx context.Context) (float64, error) {
	cur, err := s.c.Aggregate(ctx, RevenuePipeline())
	if err != nil {
		return 0, translate("aggregate revenue", err)
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, translate("decode revenue", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// CategoryStatsPipeline expands each menu item reference, inner-joins it
// against products and groups the joined rows by category. References to
// products that no longer exist produce an empty join array and are dropped
// by the second $unwind.
func CategoryStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: db.ProductsCollection},
			{Key: "localField", Value: "menuItems"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$product.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "total", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}

func (s *PaymentStore) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	cur, err := s.c.Aggregate(ctx, CategoryStatsPipeline())
	if err != nil {
		return nil, translate("aggregate order stats", err)
	}
	stats := make([]models.CategoryStat, 0)
	if err := cur.All(ctx, &stats); err != nil {
		return nil, translate("decode order stats", err)
	}
	return stats, nil
}
