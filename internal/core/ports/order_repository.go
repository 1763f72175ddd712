package ports

import (
	"context"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and payment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including any new or settled payments.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// with its payments loaded.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTransactionRef retrieves the order that owns a payment with the
	// given provider transaction reference. Used by payment confirmation.
	GetByTransactionRef(ctx context.Context, transactionRef string) (*order.Order, error)

	// GetAllWithPendingPayments retrieves every order that has at least one
	// payment still in PENDING. Used by the reconciliation job.
	GetAllWithPendingPayments(ctx context.Context) ([]*order.Order, error)
}
