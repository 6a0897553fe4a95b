package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
)

func TestUserClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/u-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "u-1", "name": "Ada", "email": "ada@example.com",
		})
	}))
	defer srv.Close()

	u, err := NewUserClient(srv.URL).GetUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}, u)
}

func TestUserClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewUserClient(srv.URL).GetUser(context.Background(), "u-404")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewUserClient(srv.URL).GetUser(context.Background(), "u-1")
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestUserClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listens on the URL any more

	_, err := NewUserClient(srv.URL).GetUser(context.Background(), "u-1")
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestProductClientGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/p-a", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "p-a", "name": "Keyboard", "price": "9.99", "stock": 10,
		})
	}))
	defer srv.Close()

	p, err := NewProductClient(srv.URL).GetProduct(context.Background(), "p-a")
	require.NoError(t, err)
	assert.Equal(t, "p-a", p.ID)
	assert.Equal(t, "Keyboard", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 10, p.Stock)
}

func TestProductClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewProductClient(srv.URL).GetProduct(context.Background(), "p-404")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductClientSetStock(t *testing.T) {
	var got setStockDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/products/p-a/stock", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewProductClient(srv.URL).SetStock(context.Background(), "p-a", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)
}

func TestProductClientSetStockErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: domain.ErrProductNotFound},
		{name: "server error", status: http.StatusInternalServerError, want: domain.ErrUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, want: domain.ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := NewProductClient(srv.URL).SetStock(context.Background(), "p-a", 8)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
