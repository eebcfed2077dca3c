// Package memory is an in-process implementation of the store contracts,
// used by DB_DRIVER=memory and by service tests. It mirrors the MongoDB
// store's observable behavior, including the aggregation semantics.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bistro-api/internal/apperr"
	"bistro-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu       sync.RWMutex
	users    []*models.User
	products []*models.Product
	reviews  []*models.Review
	carts    []*models.CartEntry
	payments []*models.Payment
}

func New() *Store {
	return &Store{}
}

// Per-collection views. Each satisfies the matching service contract.
type (
	Users    struct{ *Store }
	Products struct{ *Store }
	Reviews  struct{ *Store }
	Carts    struct{ *Store }
	Payments struct{ *Store }
)

func (s *Store) Users() Users       { return Users{s} }
func (s *Store) Products() Products { return Products{s} }
func (s *Store) Reviews() Reviews   { return Reviews{s} }
func (s *Store) Carts() Carts       { return Carts{s} }
func (s *Store) Payments() Payments { return Payments{s} }

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
}

// WithTransaction runs fn directly; the memory store has no rollback.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Users

func (s Users) Create(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("insert user: %w: %v", apperr.ErrStore, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("insert user: %w", apperr.ErrConflict)
		}
	}
	u.ID = newID(u.ID)
	cp := *u
	s.users = append(s.users, &cp)
	return nil
}

func (s Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find user by email: %w: %v", apperr.ErrStore, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("find user by email")
}

func (s Users) List(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (s Users) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return notFound("update user role")
}

func (s Users) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// Products and reviews

func (s Products) List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Product, 0)
	var skipped int64
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if skipped < f.Skip {
			skipped++
			continue
		}
		if f.Limit > 0 && int64(len(out)) >= f.Limit {
			break
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s Products) Count(ctx context.Context, category string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.products {
		if category == "" || p.Category == category {
			n++
		}
	}
	return n, nil
}

func (s Products) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = newID(p.ID)
	cp := *p
	s.products = append(s.products, &cp)
	return nil
}

func (s Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return notFound("delete product")
}

func (s *Store) AddReview(r *models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = newID(r.ID)
	cp := *r
	s.reviews = append(s.reviews, &cp)
}

func (s Reviews) List(ctx context.Context) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

// Carts

func (s Carts) Create(ctx context.Context, e *models.CartEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = newID(e.ID)
	cp := *e
	s.carts = append(s.carts, &cp)
	return nil
}

func (s Carts) ListByEmail(ctx context.Context, email string) ([]*models.CartEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.CartEntry, 0)
	for _, e := range s.carts {
		if e.Email == email {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s Carts) Delete(ctx context.Context, id primitive.ObjectID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.carts {
		if e.ID == id && e.Email == email {
			s.carts = append(s.carts[:i], s.carts[i+1:]...)
			return nil
		}
	}
	return notFound("delete cart entry")
}

func (s Carts) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("delete cart entries: %w: %v", apperr.ErrStore, err)
	}
	want := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.carts[:0]
	var deleted int64
	for _, e := range s.carts {
		if _, ok := want[e.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.carts = kept
	return deleted, nil
}

// Payments

func (s Payments) Create(ctx context.Context, p *models.Payment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("insert payment: %w: %v", apperr.ErrStore, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = newID(p.ID)
	cp := *p
	s.payments = append(s.payments, &cp)
	return nil
}

func (s Payments) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return notFound("update payment status")
}

func (s Payments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, notFound("find payment")
}

func (s Payments) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0)
	for _, p := range s.payments {
		if p.Email == email {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s Payments) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.payments)), nil
}

func (s Payments) TotalRevenue(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		total += p.Price
	}
	return total, nil
}

// CategoryStats follows the MongoDB pipeline: one row per menu item
// reference, inner join on product id, group by category.
func (s Payments) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[primitive.ObjectID]*models.Product, len(s.products))
	for _, p := range s.products {
		byID[p.ID] = p
	}

	groups := make(map[string]*models.CategoryStat)
	for _, pay := range s.payments {
		for _, itemID := range pay.MenuItemIDs {
			product, ok := byID[itemID]
			if !ok {
				continue
			}
			g, ok := groups[product.Category]
			if !ok {
				g = &models.CategoryStat{Category: product.Category}
				groups[product.Category] = g
			}
			g.Quantity++
			g.Total += product.Price
		}
	}

	out := make([]models.CategoryStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
