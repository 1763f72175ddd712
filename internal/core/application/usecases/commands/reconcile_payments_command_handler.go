package commands

import (
	"context"
	"log/slog"

	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/core/ports"
)

// ReconcilePaymentsCommandHandler sweeps pending payments and settles them
// against the provider's records. Each order is processed independently: a
// provider error on one payment skips that payment and the sweep moves on.
type ReconcilePaymentsCommandHandler struct {
	uowFactory  OrderUoWFactory
	provider    ports.PaymentProvider
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
	engine      services.WorkflowEngine
	systemActor order.Actor
}

// NewReconcilePaymentsCommandHandler creates a handler for payment
// reconciliation sweeps.
func NewReconcilePaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.PaymentProvider,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
	systemActor order.Actor,
) ReconcilePaymentsCommandHandler {
	return ReconcilePaymentsCommandHandler{
		uowFactory:  uowFactory,
		provider:    provider,
		auditLogger: auditLogger,
		notifier:    notifier,
		engine:      services.NewWorkflowEngine(),
		systemActor: systemActor,
	}
}

// Handle processes the reconciliation sweep. Loads every order with pending
// payments, re-verifies each pending payment with the provider, settles or
// fails it, and persists the changes in one transaction. Side effects run
// after the commit.
func (h *ReconcilePaymentsCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentsCommand) error {
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
	aggregates, err := orderRepo.GetAllWithPendingPayments(ctx)
	if err != nil {
		return err
	}

	var allEffects []services.SideEffect
	for _, aggregate := range aggregates {
		effects, changed := h.reconcileOrder(ctx, aggregate)
		if !changed {
			continue
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		allEffects = append(allEffects, effects...)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	executeSideEffects(ctx, allEffects, h.auditLogger, h.notifier)
	return nil
}

// reconcileOrder verifies each pending payment on one order. Returns the
// accumulated side effects and whether anything changed.
func (h *ReconcilePaymentsCommandHandler) reconcileOrder(
	ctx context.Context, aggregate *order.Order,
) ([]services.SideEffect, bool) {
	var effects []services.SideEffect
	changed := false

	for _, payment := range aggregate.PendingPayments() {
		verification, err := h.provider.Verify(ctx, payment.TransactionRef())
		if err != nil {
			slog.Warn("payment verification failed during reconciliation",
				"orderId", aggregate.ID().String(),
				"transactionRef", payment.TransactionRef(),
				"error", err)
			continue
		}

		settleEffects, err := settleVerifiedPayment(
			aggregate, payment.TransactionRef(), verification, h.engine, h.systemActor)
		if err != nil {
			slog.Warn("payment settlement failed during reconciliation",
				"orderId", aggregate.ID().String(),
				"transactionRef", payment.TransactionRef(),
				"error", err)
			continue
		}

		changed = true
		effects = append(effects, settleEffects...)
	}

	return effects, changed
}
