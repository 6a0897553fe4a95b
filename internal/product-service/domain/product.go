// Package domain holds the product catalog's entity and ports.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is the number of units currently
// available for reservation by the order workflow.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrNotFound       = errors.New("product not found")
	ErrDuplicateName  = errors.New("product name already exists")
	ErrInvalidProduct = errors.New("invalid product")
)

// Validate checks the business constraints on a product record.
func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

// Repository is the persistence port for the catalog.
type Repository interface {
	Insert(ctx context.Context, product Product) error
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, product Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
}
