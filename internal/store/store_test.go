package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"bistro-api/internal/apperr"
	"bistro-api/internal/db"
	"bistro-api/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestCategoryStatsPipeline_InnerJoinShape(t *testing.T) {
	p := CategoryStatsPipeline()
	assert.Equal(t, []string{"$unwind", "$lookup", "$unwind", "$group", "$project", "$sort"}, stageNames(p))

	// A plain $unwind without preserveNullAndEmptyArrays drops payments
	// whose item no longer resolves.
	assert.Equal(t, "$product", p[2][0].Value)

	lookup := p[1][0].Value.(bson.D).Map()
	assert.Equal(t, db.ProductsCollection, lookup["from"])
	assert.Equal(t, "menuItems", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])
}

func TestRevenuePipeline_SingleGroup(t *testing.T) {
	p := RevenuePipeline()
	require.Len(t, p, 1)
	group := p[0][0].Value.(bson.D).Map()
	assert.Nil(t, group["_id"])
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.True(t, errors.Is(translate("op", mongo.ErrNoDocuments), apperr.ErrNotFound))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.True(t, errors.Is(translate("op", dup), apperr.ErrConflict))

	err := translate("op", context.DeadlineExceeded)
	assert.True(t, errors.Is(err, apperr.ErrStore))
}

// setupTestDB connects to MONGO_TEST_URI and returns a fresh database that is
// dropped when the test ends. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := fmt.Sprintf("bistro_test_%d", time.Now().UnixNano())
	d, err := db.Connect(ctx, uri, name, false, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, d.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = d.Collection(db.UsersCollection).Database().Drop(ctx)
		_ = d.Close(ctx)
	})
	return d
}

func TestUserStore_UniqueEmail(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	users := NewUserStore(d)

	require.NoError(t, users.Create(ctx, &models.User{Name: "A", Email: "a@x.com"}))
	err := users.Create(ctx, &models.User{Name: "A again", Email: "a@x.com"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	u, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.EffectiveRole())

	require.NoError(t, users.SetRole(ctx, u.ID, models.RoleAdmin))
	u, err = users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = users.FindByEmail(ctx, "nobody@x.com")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPaymentStore_Aggregations(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	products := NewProductStore(d)
	payments := NewPaymentStore(d)

	revenue, err := payments.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Zero(t, revenue)

	soup := &models.Product{Name: "Tomato Soup", Category: "soup", Price: 5}
	salad := &models.Product{Name: "Caesar", Category: "salad", Price: 7.5}
	require.NoError(t, products.Create(ctx, soup))
	require.NoError(t, products.Create(ctx, salad))

	gone := primitive.NewObjectID()
	require.NoError(t, payments.Create(ctx, &models.Payment{
		Email: "a@x.com", Price: 17.5, Status: models.PaymentStatusPending,
		MenuItemIDs: []primitive.ObjectID{soup.ID, soup.ID, salad.ID},
	}))
	require.NoError(t, payments.Create(ctx, &models.Payment{
		Email: "b@x.com", Price: 5, Status: models.PaymentStatusPending,
		MenuItemIDs: []primitive.ObjectID{soup.ID, gone},
	}))

	revenue, err = payments.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 22.5, revenue, 1e-9)

	stats, err := payments.CategoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryStat{
		{Category: "salad", Quantity: 1, Total: 7.5},
		{Category: "soup", Quantity: 3, Total: 15},
	}, stats)
}

func TestCartStore_DeleteMany(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	carts := NewCartStore(d)

	a := &models.CartEntry{Email: "a@x.com", Name: "Soup", ItemID: primitive.NewObjectID()}
	b := &models.CartEntry{Email: "a@x.com", Name: "Salad", ItemID: primitive.NewObjectID()}
	require.NoError(t, carts.Create(ctx, a))
	require.NoError(t, carts.Create(ctx, b))

	n, err := carts.DeleteMany(ctx, []primitive.ObjectID{a.ID, b.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := carts.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, left)
}
