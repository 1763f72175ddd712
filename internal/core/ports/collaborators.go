package ports

import (
	"context"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"
)

// AuditLogger records workflow transitions in an append-only trail.
// Implementations must not fail a transition that has already been committed;
// errors are reported to the caller for logging only.
type AuditLogger interface {
	Record(ctx context.Context, effect services.SideEffect) error
}

// Notifier delivers buyer-facing messages about order progress.
// Delivery is best effort: a failed notification never undoes a transition.
type Notifier interface {
	Notify(ctx context.Context, recipientID kernel.UUID, orderID kernel.UUID, message string) error
}

// PaymentInitiation is what the payment provider returns when a payment
// attempt is opened: the provider's reference and the URL the buyer is
// redirected to for authorization.
type PaymentInitiation struct {
	TransactionRef   string
	AuthorizationURL string
}

// PaymentVerification is the provider's answer when a transaction is looked
// up: whether it settled, and the settled amount in whole USD.
type PaymentVerification struct {
	Settled   bool
	AmountUsd int64
}

// PaymentProvider abstracts the external payment gateway.
type PaymentProvider interface {
	// Initialize opens a payment attempt for the given amount and returns
	// the provider's transaction reference and authorization URL.
	Initialize(ctx context.Context, orderID kernel.UUID, amountUsd int64, paymentType order.PaymentType) (PaymentInitiation, error)

	// Verify looks up a transaction by reference and reports its settlement
	// state. Used by payment confirmation and by reconciliation.
	Verify(ctx context.Context, transactionRef string) (PaymentVerification, error)
}
