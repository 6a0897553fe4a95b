package domain

import (
	"errors"
	"fmt"
)

// The error kinds the workflow surfaces to its boundary. Handlers map them
// to HTTP statuses with errors.Is / errors.As; everything else is internal.
var (
	// ErrInvalidRequest covers malformed input and references to entities
	// that are known not to exist (user, product, status label).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound means the order id does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrIllegalTransition means the order is in a terminal status and can
	// neither change status nor be deleted.
	ErrIllegalTransition = errors.New("order can no longer be modified")

	// ErrUnavailable means a collaborator call failed or timed out. It is
	// distinct from not-found: existence is unknown, not disproved.
	ErrUnavailable = errors.New("dependency unavailable")

	// ErrUserNotFound and ErrProductNotFound are returned by the collaborator
	// clients; the engine remaps them to ErrInvalidRequest because from the
	// caller's point of view they reference a nonexistent entity.
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// InsufficientStockError is a business rule violation carrying enough context
// for the caller to act on it.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (available=%d, requested=%d)",
		e.ProductID, e.Available, e.Requested)
}
