package domain

import (
	"fmt"
	"strings"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var validStatuses = map[OrderStatus]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseOrderStatus converts a status label into an OrderStatus. Matching is
// case-insensitive; an unrecognised label is an invalid request.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(s))
	if _, ok := validStatuses[status]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidRequest, s)
}

// IsTerminal reports whether no further mutation of the order is permitted.
// DELIVERED and CANCELLED orders can neither change status nor be deleted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
