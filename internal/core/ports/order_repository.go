// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work and outbound event publishing.
package ports

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/order"
)

var (
	// ErrConcurrentModification is returned by Update when the stored version no
	// longer matches the version the aggregate was loaded with.
	ErrConcurrentModification = errors.New("order was modified concurrently")

	// ErrDuplicateKey is returned when a unique column already holds the value.
	ErrDuplicateKey = errors.New("duplicate key")
)

// OrderRepository defines the persistence contract for order aggregates.
// Items are stored and loaded together with their order.
type OrderRepository interface {
	// Add persists a new order with its item snapshots.
	// Duplicate public or secret codes are reported as ErrDuplicateKey so
	// callers can retry with fresh codes.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores status and courier reference. It fails with
	// ErrConcurrentModification if another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByPublicCodeForUpdate loads an order and locks its row until the
	// surrounding transaction ends.
	GetByPublicCodeForUpdate(ctx context.Context, code order.PublicCode) (*order.Order, error)

	// GetBySecretCode loads an order by its tracking token.
	GetBySecretCode(ctx context.Context, code order.SecretCode) (*order.Order, error)

	ExistsPublicCode(ctx context.Context, code order.PublicCode) (bool, error)
	ExistsSecretCode(ctx context.Context, code order.SecretCode) (bool, error)
}
