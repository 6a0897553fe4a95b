package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-orders/internal/product-service/domain"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "products.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func insertProduct(t *testing.T, repo *Repository, name string) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: "test product",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       10,
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	return p
}

func TestInsertAndFindByID(t *testing.T) {
	repo := newTestRepo(t)

	p := insertProduct(t, repo, "Keyboard")

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Keyboard", got.Name)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, 10, got.Stock)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindAllOrderedByName(t *testing.T) {
	repo := newTestRepo(t)
	insertProduct(t, repo, "Mouse")
	insertProduct(t, repo, "Keyboard")

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Keyboard", products[0].Name)
	assert.Equal(t, "Mouse", products[1].Name)
}

func TestFindAllEmptyNotNil(t *testing.T) {
	repo := newTestRepo(t)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestExistsByName(t *testing.T) {
	repo := newTestRepo(t)
	insertProduct(t, repo, "Keyboard")

	exists, err := repo.ExistsByName(context.Background(), "Keyboard")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(context.Background(), "Webcam")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateStock(t *testing.T) {
	repo := newTestRepo(t)
	p := insertProduct(t, repo, "Keyboard")

	require.NoError(t, repo.UpdateStock(context.Background(), p.ID, 3))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	err = repo.UpdateStock(context.Background(), "nope", 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	p := insertProduct(t, repo, "Keyboard")

	p.Name = "Keyboard v2"
	p.Price = decimal.RequireFromString("12.50")
	require.NoError(t, repo.Update(context.Background(), p))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard v2", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")))

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	_, err = repo.FindByID(context.Background(), p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
