// Package app implements the product catalog use cases.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-orders/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/metrics"
	"github.com/jcmexdev/ecommerce-orders/internal/product-service/domain"
)

const cacheTTL = 5 * time.Minute

// Service exposes the catalog operations. The cache is optional: a nil
// cache disables read-through caching without changing behavior.
type Service struct {
	repo  domain.Repository
	cache cache.Cache
}

func NewService(repo domain.Repository, c cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// CreateProduct validates and persists a new catalog entry. Names are
// unique across the catalog.
func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	exists, err := s.repo.ExistsByName(ctx, p.Name)
	if err != nil {
		return domain.Product{}, fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrDuplicateName, p.Name)
	}

	p.ID = uuid.NewString()
	if err := s.repo.Insert(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	slog.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID),
		slog.String("name", p.Name),
		slog.String("price", p.Price.String()),
		slog.Int("stock", p.Stock))

	return s.repo.FindByID(ctx, p.ID)
}

// GetProduct returns a product by id, consulting the cache first.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	key := ""
	if s.cache != nil {
		key = s.cache.GenerateKey("get-product", id)
		if raw, err := s.cache.Get(ctx, key); err != nil {
			slog.WarnContext(ctx, "cache read failed", slog.String("error", err.Error()))
		} else if raw != "" {
			var cached cachedProduct
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				if p, err := cached.toDomain(); err == nil {
					slog.DebugContext(ctx, "cache hit", slog.String("key", key))
					return p, nil
				}
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if s.cache != nil {
		raw, err := json.Marshal(newCachedProduct(p))
		if err == nil {
			if err := s.cache.Set(ctx, key, string(raw), cacheTTL); err != nil {
				slog.WarnContext(ctx, "cache write failed", slog.String("error", err.Error()))
			}
		}
	}
	return p, nil
}

// ListProducts returns the full catalog. The result is never nil.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx, p.ID)
	slog.InfoContext(ctx, "product updated", slog.String("product_id", p.ID))
	return s.repo.FindByID(ctx, p.ID)
}

// SetStock sets the absolute stock level of a product. The order
// workflow calls this after reserving units for a line item.
func (s *Service) SetStock(ctx context.Context, id string, stock int) (domain.Product, error) {
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidProduct)
	}
	if err := s.repo.UpdateStock(ctx, id, stock); err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx, id)
	slog.InfoContext(ctx, "stock updated",
		slog.String("product_id", id),
		slog.Int("stock", stock))
	return s.repo.FindByID(ctx, id)
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	slog.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	key := s.cache.GenerateKey("get-product", id)
	if err := s.cache.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

const timeLayout = time.RFC3339Nano

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// cachedProduct is the redis representation. Decimals travel as
// strings to keep exact precision.
type cachedProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newCachedProduct(p domain.Product) cachedProduct {
	return cachedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt.Format(timeLayout),
		UpdatedAt:   p.UpdatedAt.Format(timeLayout),
	}
}

func (c cachedProduct) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(c.Price)
	if err != nil {
		return domain.Product{}, err
	}
	created, err := parseTime(c.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	updated, err := parseTime(c.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       price,
		Stock:       c.Stock,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}
