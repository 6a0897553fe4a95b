package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root persisted by the order store. Items belong to
// the order: they are created, loaded and deleted with it and have no
// standalone identity.
type Order struct {
	ID          string
	UserID      string
	Status      OrderStatus
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Items       []OrderItem
}

// OrderItem is one product line within an order. ProductName and UnitPrice
// are snapshots taken from the catalog at creation time, so historical orders
// are unaffected by later price changes.
type OrderItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}
