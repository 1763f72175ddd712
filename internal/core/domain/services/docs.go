// Package services contains stateless domain services that coordinate
// behavior across the order aggregate.
//
// WorkflowEngine is the single gate for workflow transitions: it enforces
// role requirements, delegates state validation to the aggregate and
// describes the side effects (audit record, buyer notification) of each
// successful change. PaymentGate derives the buyer's current payment options
// from the order's quote, status and settled payments.
//
// Both services are pure: they hold no state and touch no infrastructure, so
// the application layer decides when their outputs are persisted or executed.
package services
