package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
)

// CreateImportRequestCommandHandler handles the business logic for import
// request creation. The landed-cost quote is calculated and attached
// immediately so an admin only has to review and send it.
//
// Example:
//
//	handler := NewCreateImportRequestCommandHandler(uowFactory, pricing.DefaultConfig())
//	cmd, _ := NewCreateImportRequestCommand(orderID, buyerID, vehicle,
//	    pricing.ShippingMethodRoRo, "Lagos")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("import request failed: %w", err)
//	}
//	// Order is now in PENDING_QUOTE with its quote attached
type CreateImportRequestCommandHandler struct {
	uowFactory    OrderUoWFactory
	pricingConfig pricing.Config
	calculator    pricing.LandedCostCalculator
}

// NewCreateImportRequestCommandHandler creates a handler for import request
// creation. Requires an OrderUoWFactory for transactional persistence and the
// fee schedule for quote calculation.
func NewCreateImportRequestCommandHandler(
	uowFactory OrderUoWFactory,
	pricingConfig pricing.Config,
) CreateImportRequestCommandHandler {
	return CreateImportRequestCommandHandler{
		uowFactory:    uowFactory,
		pricingConfig: pricingConfig,
		calculator:    pricing.NewLandedCostCalculator(),
	}
}

// Handle processes the import request command. Creates the order in
// PENDING_QUOTE status with a freshly calculated quote attached, inside a
// transaction.
func (h *CreateImportRequestCommandHandler) Handle(ctx context.Context, cmd CreateImportRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	vehicle := cmd.Vehicle()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		requestNumberFor(cmd),
		cmd.BuyerID(),
		vehicle,
		cmd.ShippingMethod(),
		cmd.DestinationState(),
	)
	if err != nil {
		return err
	}

	quote, err := h.calculator.Calculate(
		vehicle.PriceUsd(),
		vehicle.VehicleType(),
		cmd.ShippingMethod(),
		cmd.DestinationState(),
		h.pricingConfig,
	)
	if err != nil {
		return err
	}
	if err = newOrder.AttachQuote(quote); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// requestNumberFor derives the human-readable request number from the order
// identifier, e.g. "IMP-2026-4F2A91C3". Uniqueness follows from the UUID.
func requestNumberFor(cmd CreateImportRequestCommand) string {
	idPart := strings.ToUpper(strings.ReplaceAll(cmd.OrderID().String(), "-", ""))[:8]
	return fmt.Sprintf("IMP-%d-%s", time.Now().UTC().Year(), idPart)
}
