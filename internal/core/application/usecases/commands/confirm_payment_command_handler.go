package commands

import (
	"context"

	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/core/ports"
)

// ConfirmPaymentCommandHandler settles payment attempts. The provider is the
// source of truth: whatever the buyer claims, the payment only completes if
// the provider reports it settled. A settled deposit (or full payment)
// automatically advances a DEPOSIT_PENDING order to DEPOSIT_PAID under the
// configured system actor.
type ConfirmPaymentCommandHandler struct {
	uowFactory  OrderUoWFactory
	provider    ports.PaymentProvider
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
	engine      services.WorkflowEngine
	systemActor order.Actor
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
// The system actor is the administrative identity payment-triggered
// transitions are recorded under.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.PaymentProvider,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
	systemActor order.Actor,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:  uowFactory,
		provider:    provider,
		auditLogger: auditLogger,
		notifier:    notifier,
		engine:      services.NewWorkflowEngine(),
		systemActor: systemActor,
	}
}

// Handle processes the confirmation command: verifies the transaction with
// the provider, settles or fails the payment record, advances the workflow if
// the deposit just settled, persists and then executes side effects.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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
	aggregate, err := orderRepo.GetByTransactionRef(ctx, cmd.TransactionRef())
	if err != nil {
		return err
	}

	verification, err := h.provider.Verify(ctx, cmd.TransactionRef())
	if err != nil {
		return err
	}

	effects, err := settleVerifiedPayment(
		aggregate, cmd.TransactionRef(), verification, h.engine, h.systemActor)
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

// settleVerifiedPayment applies a provider verification result to the order:
// the payment completes or fails, and a settled deposit or full payment
// advances a DEPOSIT_PENDING order to DEPOSIT_PAID. Shared with the
// reconciliation command.
func settleVerifiedPayment(
	aggregate *order.Order,
	transactionRef string,
	verification ports.PaymentVerification,
	engine services.WorkflowEngine,
	systemActor order.Actor,
) ([]services.SideEffect, error) {
	if !verification.Settled {
		_, err := aggregate.FailPayment(transactionRef)
		return nil, err
	}

	payment, err := aggregate.SettlePayment(transactionRef)
	if err != nil {
		return nil, err
	}

	settlesDeposit := payment.Type() == order.PaymentTypeDeposit ||
		payment.Type() == order.PaymentTypeFullPayment
	if settlesDeposit && aggregate.Status() == order.DepositPending {
		return engine.Transition(aggregate, order.ActionMarkDepositPaid, systemActor, "")
	}

	return nil, nil
}
