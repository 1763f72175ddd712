package commands

import (
	"errors"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/pkg/guard"
)

var (
	ErrInitiatePaymentCommandIsNotConstructed = errors.New(
		"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
	)

	// ErrPaymentNotAvailable indicates the requested payment type is not
	// currently open for the order (wrong status, deposit already settled,
	// or nothing left to pay).
	ErrPaymentNotAvailable = errors.New("payment type is not currently available for this order")
)

// InitiatePaymentCommand represents a buyer's request to open a payment
// attempt against an order. The amount is never taken from the caller; it is
// derived from the order's payment options.
//
// Example:
//
//	cmd, err := NewInitiatePaymentCommand(paymentID, orderID, buyerActor,
//	    order.PaymentTypeDeposit)
//	if err != nil {
//	    return fmt.Errorf("invalid payment request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("payment initiation failed: %w", err)
//	}
//	// redirect the buyer to result.AuthorizationURL
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID   kernel.UUID
	orderID     kernel.UUID
	actor       order.Actor
	paymentType order.PaymentType

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a command to open a payment attempt.
// Validates both identities, the actor and the payment type.
func NewInitiatePaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	actor order.Actor,
	paymentType order.PaymentType,
) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setPaymentType(paymentType),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier the new payment will be created under.
func (c InitiatePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the order being paid.
func (c InitiatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who is initiating the payment.
func (c InitiatePaymentCommand) Actor() order.Actor {
	return c.actor
}

// PaymentType returns the requested payment type.
func (c InitiatePaymentCommand) PaymentType() order.PaymentType {
	return c.paymentType
}

func (c *InitiatePaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *InitiatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *InitiatePaymentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *InitiatePaymentCommand) setPaymentType(paymentType order.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}

	c.paymentType = paymentType
	return nil
}
