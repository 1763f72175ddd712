package commands

import (
	"context"
	"log/slog"

	"autoimport/internal/core/domain/services"
	"autoimport/internal/core/ports"
)

// TransitionOrderCommandHandler handles workflow transition requests.
// The transition itself is transactional; side effects (audit trail, buyer
// notification) run after the commit so they can never undo a legitimate
// status change.
type TransitionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	engine      services.WorkflowEngine
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
}

// NewTransitionOrderCommandHandler creates a handler for workflow
// transitions. Requires an OrderUoWFactory for transactional persistence plus
// the audit and notification collaborators.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		engine:      services.NewWorkflowEngine(),
		auditLogger: auditLogger,
		notifier:    notifier,
	}
}

// Handle processes the transition command: loads the order, lets the workflow
// engine validate and apply the action, persists the result and then executes
// the engine's side effects.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	effects, err := h.engine.Transition(aggregate, cmd.Action(), cmd.Actor(), cmd.Reason())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	executeSideEffects(ctx, effects, h.auditLogger, h.notifier)
	return nil
}

// executeSideEffects carries out post-commit effects. Failures are logged and
// swallowed: the transition is already committed.
func executeSideEffects(
	ctx context.Context,
	effects []services.SideEffect,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
) {
	for _, effect := range effects {
		switch effect.Kind {
		case services.SideEffectAudit:
			if err := auditLogger.Record(ctx, effect); err != nil {
				slog.Warn("audit record failed",
					"orderId", effect.OrderID.String(),
					"action", string(effect.Action),
					"error", err)
			}
		case services.SideEffectNotify:
			if err := notifier.Notify(ctx, effect.RecipientID, effect.OrderID, effect.Message); err != nil {
				slog.Warn("buyer notification failed",
					"orderId", effect.OrderID.String(),
					"recipientId", effect.RecipientID.String(),
					"error", err)
			}
		}
	}
}
