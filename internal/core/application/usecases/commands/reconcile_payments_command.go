package commands

import (
	"errors"

	"autoimport/internal/pkg/guard"
)

var ErrReconcilePaymentsCommandIsNotConstructed = errors.New(
	"ReconcilePaymentsCommand must be created via NewReconcilePaymentsCommand constructor",
)

// ReconcilePaymentsCommand triggers a sweep over every pending payment,
// re-verifying each with the provider. Catches payments whose confirmation
// callback was lost (buyer closed the tab, webhook dropped).
type ReconcilePaymentsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcilePaymentsCommand creates a reconciliation sweep command.
// This is a parameterless command; the sweep always covers all pending payments.
func NewReconcilePaymentsCommand() ReconcilePaymentsCommand {
	return ReconcilePaymentsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentsCommandIsNotConstructed)
}
