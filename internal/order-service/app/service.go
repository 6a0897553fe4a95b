// Package app implements the order workflow: the create-order orchestration
// across the user directory and the product catalog, and the status state
// machine governing later mutations.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/metrics"
)

// LineItem is one requested product-quantity pair in a create-order call.
type LineItem struct {
	ProductID string
	Quantity  int
}

// Service coordinates the order workflow against its three collaborators.
// It performs no retries and holds no locks: every failure aborts the
// remaining steps and surfaces to the caller immediately.
type Service struct {
	repo    domain.OrderRepository
	users   domain.UserDirectory
	catalog domain.ProductCatalog
	now     func() time.Time
}

func NewService(repo domain.OrderRepository, users domain.UserDirectory, catalog domain.ProductCatalog) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		catalog: catalog,
		now:     time.Now,
	}
}

// CreateOrder validates the user, then walks the requested items in caller
// order: for each item it validates stock, snapshots name and unit price,
// accumulates the total and writes the decremented stock back to the catalog
// before moving to the next item. Stock writes already issued are NOT undone
// when a later item fails; the caller sees the error and the partial
// decrement stands. Only after every item succeeds is the order persisted.
func (s *Service) CreateOrder(ctx context.Context, userID string, items []LineItem) (*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrInvalidRequest)
	}
	for _, it := range items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: item product id is required", domain.ErrInvalidRequest)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", domain.ErrInvalidRequest, it.ProductID)
		}
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", domain.ErrInvalidRequest, userID)
		}
		return nil, fmt.Errorf("verify user %s: %w", userID, err)
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		product, err := s.catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %s does not exist", domain.ErrInvalidRequest, it.ProductID)
			}
			return nil, fmt.Errorf("verify product %s: %w", it.ProductID, err)
		}

		if product.Stock < it.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				Available: product.Stock,
				Requested: it.Quantity,
			}
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)

		// The decrement is issued before the next item is examined. There is
		// no reservation hold and no compensation: if a later item fails,
		// this write stands.
		if err := s.catalog.SetStock(ctx, product.ID, product.Stock-it.Quantity); err != nil {
			return nil, fmt.Errorf("update stock for product %s: %w", product.ID, err)
		}

		slog.DebugContext(ctx, "stock updated",
			"product_id", product.ID,
			"previous", product.Stock,
			"current", product.Stock-it.Quantity,
		)
	}

	order := &domain.Order{
		UserID:      userID,
		Status:      domain.StatusPending,
		OrderDate:   s.now().UTC(),
		TotalAmount: total,
		Items:       orderItems,
	}

	// Stock has already been decremented at this point. A failed save is
	// surfaced as-is and is not compensated.
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	metrics.OrdersCreated.WithLabelValues(string(order.Status)).Inc()
	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"user_id", userID,
		"items", len(order.Items),
		"total", order.TotalAmount.String(),
	)

	return order, nil
}

// GetOrder returns a single order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// ListOrders returns every persisted order.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll(ctx)
}

// ListOrdersByUser returns the orders owned by the given user, oldest first.
// An unknown user simply yields an empty result; the directory is not
// consulted again after creation.
func (s *Service) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// ListOrdersByStatus parses the status label first, so an unrecognised label
// fails with an invalid request instead of an empty result.
func (s *Service) ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, parsed)
}

// ChangeStatus moves an order to a new status. Terminal orders (DELIVERED,
// CANCELLED) refuse any change; beyond that guard any transition is allowed,
// including jumping straight to a terminal status.
func (s *Service) ChangeStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrIllegalTransition, id, order.Status)
	}

	newStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("update status of order %s: %w", id, err)
	}
	order.Status = newStatus

	metrics.OrderStatusChanged.WithLabelValues(string(previous), string(newStatus)).Inc()
	slog.InfoContext(ctx, "order status changed",
		"order_id", id,
		"from", previous,
		"to", newStatus,
	)

	return order, nil
}

// DeleteOrder removes a non-terminal order together with its items.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: order %s is %s", domain.ErrIllegalTransition, id, order.Status)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	metrics.OrdersDeleted.Inc()
	slog.InfoContext(ctx, "order deleted", "order_id", id)
	return nil
}
