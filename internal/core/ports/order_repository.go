// Package ports defines the contracts between the order lifecycle and its
// infrastructure: the order store, the credential source and the SMS provider.
package ports

import (
	"context"
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by CompareAndSet when the stored order
// changed since it was read. The caller re-reads and decides again.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository is the order store. Writes are atomic per order id; no
// partially applied update is ever visible.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CompareAndSet writes every mutable field of aggregate only if the stored
	// version still equals aggregate.Version(), then advances the stored version.
	// Returns ErrConcurrentModification on a version mismatch and an
	// errs.ObjectNotFoundError when the order is gone.
	CompareAndSet(ctx context.Context, aggregate *order.Order) error

	// Delete removes the given orders unconditionally and reports how many existed.
	Delete(ctx context.Context, ids []kernel.UUID) (int64, error)
}
