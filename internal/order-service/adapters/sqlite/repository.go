// Package sqlite provides the SQLite-backed implementation of
// domain.OrderRepository.
//
// WAL mode is enabled on Open so that readers never block writers: the list
// endpoints may be reading while a create-order request is writing.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"

	// Register the pure-Go SQLite driver.
	// We use modernc.org/sqlite instead of mattn/go-sqlite3 to avoid CGO
	// requirements, making it easier to build and run in Docker (Alpine).
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. An order and its items are one
// unit: items are written in the same transaction as their order and carry a
// position column so they are read back in the order the caller supplied.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    -- UUID assigned by Save on first persistence.
    id            TEXT PRIMARY KEY,

    -- Externally-owned user reference; not re-validated after creation.
    user_id       TEXT NOT NULL,

    -- Lifecycle status label (PENDING, ..., DELIVERED, CANCELLED).
    status        TEXT NOT NULL,

    -- Creation timestamp (RFC3339 stored as TEXT, SQLite idiom). Immutable.
    order_date    TEXT NOT NULL,

    -- Exact decimal total, stored as TEXT to avoid float rounding drift.
    total_amount  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
    order_id      TEXT    NOT NULL REFERENCES orders(id),

    -- Zero-based index preserving the caller-supplied item order.
    position      INTEGER NOT NULL,

    product_id    TEXT    NOT NULL,

    -- Catalog snapshots taken at order creation time.
    product_name  TEXT    NOT NULL,
    unit_price    TEXT    NOT NULL,

    quantity      INTEGER NOT NULL,
    subtotal      TEXT    NOT NULL,

    PRIMARY KEY (order_id, position)
);

CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_status  ON orders(status);
`

// Repository is the SQLite implementation of domain.OrderRepository.
type Repository struct {
	db *sql.DB
}

var _ domain.OrderRepository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver uses _pragma query parameters to configure connection state.
	// WAL enables concurrent readers. foreign_keys=on enforces integrity.
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts the order and every item in one transaction, assigning a UUID
// when the order has no id yet.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertOrder = `
		INSERT INTO orders (id, user_id, status, order_date, total_amount)
		VALUES (?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, insertOrder,
		order.ID,
		order.UserID,
		string(order.Status),
		formatRFC3339(order.OrderDate),
		order.TotalAmount.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order %q: %w", order.ID, err)
	}

	const insertItem = `
		INSERT INTO order_items (order_id, position, product_id, product_name, unit_price, quantity, subtotal)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, insertItem,
			order.ID,
			i,
			item.ProductID,
			item.ProductName,
			item.UnitPrice.String(),
			item.Quantity,
			item.Subtotal.String(),
		)
		if err != nil {
			return fmt.Errorf("sqlite: insert item %d of order %q: %w", i, order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit order %q: %w", order.ID, err)
	}
	return nil
}

// FindByID loads one order with its items.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
		SELECT id, user_id, status, order_date, total_amount
		FROM   orders
		WHERE  id = ?`

	row := r.db.QueryRowContext(ctx, q, id)

	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: order %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", id, err)
	}

	order.Items, err = r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
		SELECT id, user_id, status, order_date, total_amount
		FROM   orders
		ORDER  BY order_date, id`
	return r.queryOrders(ctx, q)
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
		SELECT id, user_id, status, order_date, total_amount
		FROM   orders
		WHERE  user_id = ?
		ORDER  BY order_date, id`
	return r.queryOrders(ctx, q, userID)
}

func (r *Repository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	const q = `
		SELECT id, user_id, status, order_date, total_amount
		FROM   orders
		WHERE  status = ?
		ORDER  BY order_date, id`
	return r.queryOrders(ctx, q, string(status))
}

// UpdateStatus overwrites the status of an existing order.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const q = `UPDATE orders SET status = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return fmt.Errorf("sqlite: update status of order %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for order %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite: order %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the order and its items in one transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete items of order %q: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete order %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for order %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite: order %q: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit delete of order %q: %w", id, err)
	}
	return nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query orders: %w", err)
	}
	defer rows.Close()

	// Empty slice, never nil: the API contract promises an empty sequence
	// when nothing matches.
	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate orders: %w", err)
	}

	for i := range orders {
		orders[i].Items, err = r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
		SELECT product_id, product_name, unit_price, quantity, subtotal
		FROM   order_items
		WHERE  order_id = ?
		ORDER  BY position`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query items of order %q: %w", orderID, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item            domain.OrderItem
			price, subtotal string
		)
		if err := rows.Scan(&item.ProductID, &item.ProductName, &price, &item.Quantity, &subtotal); err != nil {
			return nil, fmt.Errorf("sqlite: scan item of order %q: %w", orderID, err)
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("sqlite: unit price %q: %w", price, err)
		}
		if item.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("sqlite: subtotal %q: %w", subtotal, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate items of order %q: %w", orderID, err)
	}
	return items, nil
}

// scanOrder maps one orders row to the domain, parsing the TEXT-encoded
// timestamp, decimal total and status label.
func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var (
		order               domain.Order
		status, date, total string
	)
	if err := scan(&order.ID, &order.UserID, &status, &date, &total); err != nil {
		return nil, err
	}

	parsedStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("stored status %q: %w", status, err)
	}
	order.Status = parsedStatus

	if order.OrderDate, err = parseRFC3339(date); err != nil {
		return nil, err
	}
	if order.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("stored total %q: %w", total, err)
	}
	return &order, nil
}
