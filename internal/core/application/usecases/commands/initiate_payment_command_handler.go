package commands

import (
	"context"
	"fmt"

	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/core/ports"
)

// InitiatePaymentResult is what the buyer needs to proceed with payment:
// the provider reference to confirm against later and the URL to authorize
// the charge at.
type InitiatePaymentResult struct {
	TransactionRef   string
	AuthorizationURL string
	AmountUsd        int64
}

// InitiatePaymentCommandHandler opens payment attempts. The payment gate
// decides which payment types are open and for how much; the provider issues
// the transaction reference; the attempt is recorded on the order as PENDING.
type InitiatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	provider   ports.PaymentProvider
	gate       services.PaymentGate
}

// NewInitiatePaymentCommandHandler creates a handler for payment initiation.
// Requires an OrderUoWFactory for transactional persistence and the payment
// provider gateway.
func NewInitiatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.PaymentProvider,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		gate:       services.NewPaymentGate(),
	}
}

// Handle processes the payment initiation command. Only the buyer who owns
// the order (or an admin) may pay, and only payment types the gate currently
// allows; the charged amount always comes from the gate, never the request.
func (h *InitiatePaymentCommandHandler) Handle(
	ctx context.Context, cmd InitiatePaymentCommand,
) (InitiatePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return InitiatePaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	actor := cmd.Actor()
	if !actor.IsAdmin() && !actor.ID().IsEqual(aggregate.BuyerID()) {
		return InitiatePaymentResult{}, fmt.Errorf("%w: %s is not the buyer of this order",
			order.ErrActorNotAllowed, actor.ID())
	}

	amount, allowed := h.gate.AllowedAmount(aggregate, cmd.PaymentType())
	if !allowed {
		return InitiatePaymentResult{}, fmt.Errorf("%w: %s in status %s",
			ErrPaymentNotAvailable, cmd.PaymentType(), aggregate.Status())
	}

	initiation, err := h.provider.Initialize(ctx, aggregate.ID(), amount, cmd.PaymentType())
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	payment, err := order.NewPayment(
		cmd.PaymentID(), aggregate.ID(), amount, cmd.PaymentType(), initiation.TransactionRef)
	if err != nil {
		return InitiatePaymentResult{}, err
	}
	if err = aggregate.AddPayment(payment); err != nil {
		return InitiatePaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return InitiatePaymentResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	return InitiatePaymentResult{
		TransactionRef:   initiation.TransactionRef,
		AuthorizationURL: initiation.AuthorizationURL,
		AmountUsd:        amount,
	}, nil
}
