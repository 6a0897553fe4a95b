package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-orders/internal/product-service/domain"
)

type fakeRepo struct {
	products map[string]domain.Product
	findErr  error
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[string]domain.Product)}
}

func (r *fakeRepo) Insert(_ context.Context, p domain.Product) error {
	p.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (domain.Product, error) {
	if r.findErr != nil {
		return domain.Product{}, r.findErr
	}
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return p, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range r.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(_ context.Context, p domain.Product) error {
	existing, ok := r.products[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = existing.UpdatedAt.Add(time.Minute)
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) UpdateStock(_ context.Context, id string, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	p.Stock = stock
	r.products[id] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	delete(r.products, id)
	return nil
}

// fakeCache records hits and invalidations in a plain map.
type fakeCache struct {
	entries map[string]string
	gets    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	c.entries[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	return c.entries[key], nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deletes++
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("product-service:%s:%s", operation, key)
}

func validProduct() domain.Product {
	return domain.Product{
		Name:        "Keyboard",
		Description: "Mechanical, tenkeyless",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       10,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Keyboard", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 10, created.Stock)
}

func TestCreateProductDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	_, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), validProduct())
	require.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateProductInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Product)
	}{
		{name: "empty name", mutate: func(p *domain.Product) { p.Name = "" }},
		{name: "zero price", mutate: func(p *domain.Product) { p.Price = decimal.Zero }},
		{name: "negative price", mutate: func(p *domain.Product) { p.Price = decimal.RequireFromString("-1") }},
		{name: "negative stock", mutate: func(p *domain.Product) { p.Stock = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), nil)

			p := validProduct()
			tc.mutate(&p)

			_, err := svc.CreateProduct(context.Background(), p)
			require.ErrorIs(t, err, domain.ErrInvalidProduct)
		})
	}
}

func TestGetProductCachesResult(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewService(repo, c)

	created, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)

	first, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	// A broken repository proves the second read is served from the cache.
	repo.findErr = fmt.Errorf("database gone")

	second, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Price.Equal(second.Price))
	assert.Equal(t, first.Stock, second.Stock)
}

func TestSetStockInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewService(repo, c)

	created, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)

	updated, err := svc.SetStock(context.Background(), created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, 1, c.deletes)

	fresh, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.Stock)
}

func TestSetStockNegative(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.SetStock(context.Background(), "p-1", -1)
	require.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestSetStockUnknownProduct(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.SetStock(context.Background(), "p-missing", 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))
	assert.Empty(t, repo.products)

	err = svc.DeleteProduct(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProducts(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
