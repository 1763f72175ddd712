package commands

import (
	"errors"

	"autoimport/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a request to settle a payment attempt by
// verifying its transaction reference with the provider. Triggered by the
// buyer returning from the payment page or by a provider webhook.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	transactionRef string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm a payment by its
// provider transaction reference.
func NewConfirmPaymentCommand(transactionRef string) (ConfirmPaymentCommand, error) {
	if transactionRef == "" {
		return ConfirmPaymentCommand{}, errors.New("transaction reference is required")
	}

	return ConfirmPaymentCommand{
		transactionRef: transactionRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// TransactionRef returns the provider transaction reference to verify.
func (c ConfirmPaymentCommand) TransactionRef() string {
	return c.transactionRef
}
