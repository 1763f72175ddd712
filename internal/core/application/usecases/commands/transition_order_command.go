package commands

import (
	"errors"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order through its
// workflow: who is acting, which action, and an optional reason (required by
// the domain for cancellation).
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.ActionVerify, adminActor, "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, auditLogger, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action
	actor   order.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to perform a workflow
// transition. Validates the order identity, the action name and the actor.
// The reason is passed through as-is; the aggregate decides when it is
// required.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	action order.Action,
	actor order.Actor,
	reason string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the workflow action to perform.
func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

// Actor returns who is performing the action.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

// Reason returns the optional reason accompanying the action.
func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(action order.Action) error {
	parsed, err := order.ActionFromString(string(action))
	if err != nil {
		return err
	}

	c.action = parsed
	return nil
}

func (c *TransitionOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
