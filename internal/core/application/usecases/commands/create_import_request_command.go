package commands

import (
	"errors"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"
	"autoimport/internal/pkg/guard"
)

var ErrCreateImportRequestCommandIsNotConstructed = errors.New(
	"CreateImportRequestCommand must be created via NewCreateImportRequestCommand constructor",
)

// CreateImportRequestCommand represents a buyer's request to import a vehicle.
// Encapsulates the vehicle listing snapshot plus the shipping preferences the
// quote will be calculated from.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateImportRequestCommand(
//	    orderID, buyerID, vehicle, pricing.ShippingMethodRoRo, "Lagos")
//	if err != nil {
//	    return fmt.Errorf("invalid import request: %w", err)
//	}
//
//	handler := NewCreateImportRequestCommandHandler(uowFactory, cfg)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create import request: %w", err)
//	}
type CreateImportRequestCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	buyerID          kernel.UUID
	vehicle          order.VehicleSnapshot
	shippingMethod   pricing.ShippingMethod
	destinationState string

	guard guard.ConstructorGuard
}

// NewCreateImportRequestCommand creates a command to register a new import
// request. Validates identities, the vehicle snapshot and the shipping
// preferences. Returns an error if any validation fails.
func NewCreateImportRequestCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	vehicle order.VehicleSnapshot,
	shippingMethod pricing.ShippingMethod,
	destinationState string,
) (CreateImportRequestCommand, error) {
	cmd := CreateImportRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setVehicle(vehicle),
		cmd.setShipping(shippingMethod, destinationState),
	); err != nil {
		return CreateImportRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateImportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateImportRequestCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateImportRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the requesting buyer's identity.
func (c CreateImportRequestCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Vehicle returns the vehicle snapshot taken from the listing.
func (c CreateImportRequestCommand) Vehicle() order.VehicleSnapshot {
	return c.vehicle
}

// ShippingMethod returns the requested ocean freight method.
func (c CreateImportRequestCommand) ShippingMethod() pricing.ShippingMethod {
	return c.shippingMethod
}

// DestinationState returns the Nigerian destination state.
func (c CreateImportRequestCommand) DestinationState() string {
	return c.destinationState
}

func (c *CreateImportRequestCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateImportRequestCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateImportRequestCommand) setVehicle(vehicle order.VehicleSnapshot) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

func (c *CreateImportRequestCommand) setShipping(
	method pricing.ShippingMethod, destinationState string,
) error {
	if method == "" {
		return errs.NewValueIsRequiredError("shipping method")
	}
	if destinationState == "" {
		return errs.NewValueIsRequiredError("destination state")
	}

	c.shippingMethod = method
	c.destinationState = destinationState
	return nil
}
