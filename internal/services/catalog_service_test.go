package services

import (
	"context"
	"errors"
	"testing"

	"bistro-api/internal/apperr"
	"bistro-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int64
		want       models.ProductFilter
	}{
		{"defaults", 0, 0, models.ProductFilter{Category: "soup", Skip: 0, Limit: DefaultShopPageSize}},
		{"second page", 2, 6, models.ProductFilter{Category: "soup", Skip: 6, Limit: 6}},
		{"size capped", 3, 500, models.ProductFilter{Category: "soup", Skip: 2 * MaxPageSize, Limit: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(" soup ", tt.page, tt.size))
		})
	}
}

func TestNewProductFilter(t *testing.T) {
	assert.Equal(t, models.ProductFilter{}, NewProductFilter("", 0))
	assert.Equal(t, models.ProductFilter{Category: "pizza", Limit: 3}, NewProductFilter("pizza", 3))
	assert.Equal(t, models.ProductFilter{Limit: MaxPageSize}, NewProductFilter("", 1000))
}

func TestCatalogService_ListAndCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i, c := range []string{"soup", "salad", "soup", "soup"} {
		_, err := f.catalog.AddProduct(ctx, &models.Product{Name: "Dish", Category: c, Price: float64(i)})
		require.NoError(t, err)
	}

	all, err := f.catalog.ListProducts(ctx, NewProductFilter("", 0))
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := f.catalog.ListProducts(ctx, Page("soup", 2, 2))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "soup", page[0].Category)

	n, err := f.catalog.CountProducts(ctx, "soup")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = f.catalog.CountProducts(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestCatalogService_AddProductValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.catalog.AddProduct(ctx, &models.Product{Name: " ", Category: "soup"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = f.catalog.AddProduct(ctx, &models.Product{Name: "Soup", Category: "soup", Price: -1})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.catalog.AddProduct(ctx, &models.Product{Name: "Soup", Category: "soup", Price: 4})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteProduct(ctx, p.ID.Hex()))
	assert.True(t, errors.Is(f.catalog.DeleteProduct(ctx, p.ID.Hex()), apperr.ErrNotFound))
	assert.True(t, errors.Is(f.catalog.DeleteProduct(ctx, "x"), apperr.ErrInvalidInput))
}

func TestCatalogService_ListReviews(t *testing.T) {
	f := newFixture()
	f.store.AddReview(&models.Review{Name: "Sam", Details: "Great soup", Rating: 5})

	reviews, err := f.catalog.ListReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Sam", reviews[0].Name)
}

func TestCartService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry, err := f.carts.Add(ctx, "A@x.com", &models.AddToCartRequest{
		ID: primitive.NewObjectID().Hex(), Name: "Soup", Category: "soup", Price: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", entry.Email)

	_, err = f.carts.Add(ctx, "a@x.com", &models.AddToCartRequest{ID: "nope"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	empty, err := f.carts.List(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.carts.List(ctx, "a@x.com", "b@x.com")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	mine, err := f.carts.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	err = f.carts.Remove(ctx, "b@x.com", entry.ID.Hex())
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "another user's entry is not removable")

	require.NoError(t, f.carts.Remove(ctx, "a@x.com", entry.ID.Hex()))
	mine, err = f.carts.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, mine)
}
