package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"bistro-api/internal/apperr"
	"bistro-api/internal/gateway"
	"bistro-api/internal/models"
	"bistro-api/internal/store/memory"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	mu      sync.Mutex
	amounts []int64
	err     error
	seq     atomic.Int64
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*gateway.Intent, error) {
	g.mu.Lock()
	g.amounts = append(g.amounts, amount)
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := g.seq.Add(1)
	return &gateway.Intent{
		ID:           fmt.Sprintf("pi_%d", n),
		ClientSecret: fmt.Sprintf("pi_%d_secret", n),
		Amount:       amount,
		Currency:     currency,
	}, nil
}

// countingUsers records how often the store is asked for a user.
type countingUsers struct {
	UserStore
	lookups atomic.Int64
}

func (c *countingUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	c.lookups.Add(1)
	return c.UserStore.FindByEmail(ctx, email)
}

// failingCarts fails every bulk delete.
type failingCarts struct {
	CartStore
}

func (failingCarts) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, fmt.Errorf("delete cart entries: %w: connection reset", apperr.ErrStore)
}

type fixture struct {
	store   *memory.Store
	gateway *fakeGateway
	users   *UserService
	orders  *OrderService
	stats   *AnalyticsService
	catalog *CatalogService
	carts   *CartService
}

func newFixture() *fixture {
	log := zerolog.Nop()
	st := memory.New()
	gw := &fakeGateway{}
	return &fixture{
		store:   st,
		gateway: gw,
		users:   NewUserService(st.Users(), log),
		orders:  NewOrderService(st.Payments(), st.Carts(), st, gw, "usd", log),
		stats:   NewAnalyticsService(st.Users(), st.Products(), st.Payments(), st.Payments(), log),
		catalog: NewCatalogService(st.Products(), st.Reviews(), log),
		carts:   NewCartService(st.Carts(), log),
	}
}
