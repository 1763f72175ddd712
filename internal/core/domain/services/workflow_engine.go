package services

import (
	"fmt"
	"time"

	"autoimport/internal/core/domain/model/order"
)

// WorkflowEngine is the domain service that performs order workflow
// transitions. It is the single gate through which every status change goes:
// role enforcement first, then the aggregate's own transition rules, then the
// side effects of the change.
//
// Business rules:
//   - An admin satisfies every required role.
//   - A buyer satisfies buyer-required actions only on their own order.
//   - Buyer cancellation is additionally restricted to before the deposit
//     settles; after that, cancellation is an administrative decision.
//   - Authorization is checked before the transition, so a forbidden actor
//     learns nothing about whether the transition would have been valid.
//   - Every successful transition yields an audit effect; buyer-visible
//     changes additionally yield a notification effect.
//
// Example usage:
//
//	engine := services.NewWorkflowEngine()
//	effects, err := engine.Transition(o, order.ActionVerify, adminActor, "")
//	if err != nil {
//	    // order unchanged
//	    return err
//	}
//	// persist o, then execute effects
type WorkflowEngine struct{}

// NewWorkflowEngine creates a new WorkflowEngine instance.
func NewWorkflowEngine() WorkflowEngine {
	return WorkflowEngine{}
}

// Transition applies an action to an order on behalf of an actor and returns
// the side effects to execute once the change is persisted. On any error the
// order is unchanged and no effects are returned.
func (e WorkflowEngine) Transition(
	o *order.Order,
	action order.Action,
	actor order.Actor,
	reason string,
) ([]SideEffect, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if err := e.authorize(o, action, actor); err != nil {
		return nil, err
	}

	from := o.Status()
	if err := o.Apply(action, reason); err != nil {
		return nil, err
	}

	return e.effects(o, action, actor, from, reason), nil
}

func (e WorkflowEngine) authorize(o *order.Order, action order.Action, actor order.Actor) error {
	requiredRole, err := order.RequiredRoleFor(action)
	if err != nil {
		return err
	}

	if actor.IsAdmin() {
		return nil
	}
	if requiredRole != order.RoleBuyer {
		return fmt.Errorf("%w: %s requires role %s", order.ErrActorNotAllowed, action, requiredRole)
	}
	if !actor.ID().IsEqual(o.BuyerID()) {
		return fmt.Errorf("%w: %s is not the buyer of this order", order.ErrActorNotAllowed, actor.ID())
	}
	if action == order.ActionCancel && o.DepositSettled() {
		return fmt.Errorf("%w: buyer cannot cancel after the deposit has settled",
			order.ErrActorNotAllowed)
	}
	return nil
}

func (e WorkflowEngine) effects(
	o *order.Order,
	action order.Action,
	actor order.Actor,
	from order.Status,
	reason string,
) []SideEffect {
	now := time.Now().UTC()

	effects := []SideEffect{{
		Kind:       SideEffectAudit,
		OrderID:    o.ID(),
		ActorID:    actor.ID(),
		Action:     action,
		FromStatus: from,
		ToStatus:   o.Status(),
		Reason:     reason,
		OccurredAt: now,
	}}

	if message, ok := e.buyerMessage(o, action); ok {
		effects = append(effects, SideEffect{
			Kind:        SideEffectNotify,
			OrderID:     o.ID(),
			ActorID:     actor.ID(),
			Action:      action,
			FromStatus:  from,
			ToStatus:    o.Status(),
			OccurredAt:  now,
			RecipientID: o.BuyerID(),
			Message:     message,
		})
	}

	return effects
}

// buyerMessage returns the notification text for transitions the buyer should
// hear about. Actions the buyer performed themselves produce no notification.
func (e WorkflowEngine) buyerMessage(o *order.Order, action order.Action) (string, bool) {
	vehicle := o.Vehicle().Description()

	switch action {
	case order.ActionSendQuote:
		return fmt.Sprintf("Your import quote for the %s is ready.", vehicle), true
	case order.ActionMarkDepositPaid:
		return fmt.Sprintf("Deposit received for your %s. We are verifying availability.", vehicle), true
	case order.ActionCompleteInspection:
		return fmt.Sprintf("The inspection report for your %s is ready for review.", vehicle), true
	case order.ActionSubmitForApproval:
		return fmt.Sprintf("Your %s is awaiting your purchase approval.", vehicle), true
	case order.ActionMarkPurchased:
		return fmt.Sprintf("Your %s has been purchased.", vehicle), true
	case order.ActionShip:
		return fmt.Sprintf("Your %s has shipped.", vehicle), true
	case order.ActionMarkArrived:
		return fmt.Sprintf("Your %s has arrived at the port.", vehicle), true
	case order.ActionClearCustoms:
		return fmt.Sprintf("Your %s has cleared customs.", vehicle), true
	case order.ActionScheduleDelivery:
		return fmt.Sprintf("Delivery of your %s has been scheduled.", vehicle), true
	case order.ActionMarkDelivered:
		return fmt.Sprintf("Your %s has been delivered. Enjoy!", vehicle), true
	case order.ActionCancel:
		return fmt.Sprintf("Your order for the %s has been canceled.", vehicle), true
	case order.ActionRefund:
		return fmt.Sprintf("Your payments for the %s have been refunded.", vehicle), true
	default:
		return "", false
	}
}
