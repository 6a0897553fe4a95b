package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// User is the projection of a user directory record the workflow cares about.
type User struct {
	ID    string
	Name  string
	Email string
}

// Product is the projection of a catalog record: the price snapshot and the
// stock level at lookup time.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// UserDirectory is the outbound port to the user service.
// GetUser returns ErrUserNotFound when the user does not exist and an error
// wrapping ErrUnavailable when the directory cannot be reached.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (User, error)
}

// ProductCatalog is the outbound port to the product service. SetStock
// overwrites a product's stock level; there is no conditional decrement, so
// concurrent reservations of the same product can race.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (Product, error)
	SetStock(ctx context.Context, id string, stock int) error
}

// OrderRepository is the persistence port for the order aggregate.
// It is implemented by the SQLite adapter.
type OrderRepository interface {
	// Save persists the order and its items as one unit, assigning an ID
	// when the order does not have one yet.
	Save(ctx context.Context, order *Order) error

	// FindByID returns ErrNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*Order, error)

	// The list queries return an empty slice, never nil, when nothing matches.
	FindAll(ctx context.Context) ([]Order, error)
	FindByUserID(ctx context.Context, userID string) ([]Order, error)
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)

	// UpdateStatus overwrites the status of an existing order.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// Delete removes the order and its items as one unit.
	Delete(ctx context.Context, id string) error
}
