// Package sqlite persists the product catalog in an embedded sqlite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jcmexdev/ecommerce-orders/internal/product-service/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	price       TEXT NOT NULL,
	stock       INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// Repository is a sqlite-backed implementation of domain.Repository.
// Prices are stored as decimal strings and timestamps as RFC 3339 text.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ domain.Repository = (*Repository)(nil)

// Open opens (creating if needed) the database at path and applies the
// schema. The connection pool is capped at one writer, which is the
// sqlite sweet spot.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Insert(ctx context.Context, p domain.Product) error {
	now := formatTime(r.now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price.String(), p.Stock, now, now)
	if err != nil {
		return fmt.Errorf("sqlite: insert product %s: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("sqlite: find product %s: %w", id, err)
	}
	return p, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	return products, nil
}

func (r *Repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: count products named %q: %w", name, err)
	}
	return n > 0, nil
}

func (r *Repository) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Price.String(), p.Stock, formatTime(r.now()), p.ID)
	if err != nil {
		return fmt.Errorf("sqlite: update product %s: %w", p.ID, err)
	}
	return requireRow(res, p.ID)
}

func (r *Repository) UpdateStock(ctx context.Context, id string, stock int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`,
		stock, formatTime(r.now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: update stock of %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product %s: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                       domain.Product
		price, created, updated string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Stock, &created, &updated); err != nil {
		return domain.Product{}, err
	}

	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Product{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return domain.Product{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Fixed-width fractional seconds keep the TEXT column sortable.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
