package pricing

import (
	"errors"
	"fmt"

	"autoimport/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Sentinel errors for incomplete fee schedules. Unlike the destination-state
// delivery fee, the vehicle-type and shipping-method tables never fall back
// to a default: an entry missing from either is a caller configuration error.
var (
	ErrUnknownVehicleType    = errors.New("unknown vehicle type")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
)

// UnknownVehicleTypeError reports a vehicle type absent from the multiplier table.
type UnknownVehicleTypeError struct {
	VehicleType VehicleType
}

func (e *UnknownVehicleTypeError) Error() string {
	return fmt.Sprintf("%s: %s is not in the vehicle type multiplier table", ErrUnknownVehicleType, e.VehicleType)
}

func (e *UnknownVehicleTypeError) Unwrap() error {
	return ErrUnknownVehicleType
}

// UnknownShippingMethodError reports a shipping method absent from the base-cost table.
type UnknownShippingMethodError struct {
	ShippingMethod ShippingMethod
}

func (e *UnknownShippingMethodError) Error() string {
	return fmt.Sprintf("%s: %s is not in the shipping base table", ErrUnknownShippingMethod, e.ShippingMethod)
}

func (e *UnknownShippingMethodError) Unwrap() error {
	return ErrUnknownShippingMethod
}

// depositRate is the fixed deposit policy: 30% of the landed cost, due before
// the admin verifies availability and starts the inspection.
var depositRate = decimal.RequireFromString("0.30")

// Quote is the calculator's result: the full cost breakdown, the estimated
// delivery time for the chosen shipping method, and the required deposit.
type Quote struct {
	Breakdown             CostBreakdown
	EstimatedDeliveryDays int
	DepositAmountUsd      int64
}

// LandedCostCalculator computes the landed cost of importing a vehicle.
//
// The calculator is stateless; every input, including the fee schedule,
// arrives as an argument. Calling Calculate twice with identical inputs
// yields identical output.
type LandedCostCalculator struct{}

// NewLandedCostCalculator creates a landed-cost calculator.
func NewLandedCostCalculator() LandedCostCalculator {
	return LandedCostCalculator{}
}

// Calculate produces the landed-cost quote for a vehicle.
//
// The cost builds up in the order the money is actually spent:
//
//  1. Sourcing fee: vehicle price x sourcing percent, floored at the minimum.
//  2. Flat US-side fees: inspection and handling.
//  3. Ocean shipping: method base cost x vehicle-type multiplier.
//  4. Customs: duty on the dutiable value (price + freight), then VAT on the
//     duty-inclusive value, then the CISS levy on the dutiable value. Customs
//     assesses price plus freight only; brokerage fees are not dutiable. The
//     sequential compounding (duty first, VAT on the duty-inclusive value)
//     matches Nigerian customs practice and must not be reordered.
//  5. Flat Nigeria-side fees: clearing and port charges, plus local delivery
//     looked up by destination state (default for unknown states).
//
// Every line item is rounded to whole dollars; the USD total is the exact sum
// of the rounded line items, and the naira total converts the USD total at
// the configured rate.
//
// Errors:
//   - price <= 0: *errs.ValueIsInvalidError
//   - vehicle type not in the multiplier table: ErrUnknownVehicleType
//   - shipping method not in the base table: ErrUnknownShippingMethod
//   - invalid config: the error from Config.Validate
func (LandedCostCalculator) Calculate(
	vehiclePriceUsd int64,
	vehicleType VehicleType,
	shippingMethod ShippingMethod,
	destinationState string,
	cfg Config,
) (Quote, error) {
	if vehiclePriceUsd <= 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("vehicle price",
			fmt.Errorf("%d is not greater than 0", vehiclePriceUsd))
	}
	if err := cfg.Validate(); err != nil {
		return Quote{}, err
	}

	converter, err := NewCurrencyConverter(cfg.ExchangeRateNgnPerUsd)
	if err != nil {
		return Quote{}, err
	}

	multiplier, ok := cfg.VehicleTypeMultipliers[vehicleType]
	if !ok {
		return Quote{}, &UnknownVehicleTypeError{VehicleType: vehicleType}
	}
	shippingBase, ok := cfg.ShippingBaseUsd[shippingMethod]
	if !ok {
		return Quote{}, &UnknownShippingMethodError{ShippingMethod: shippingMethod}
	}
	timelineDays, ok := cfg.TimelineDaysByShippingMethod[shippingMethod]
	if !ok {
		return Quote{}, &UnknownShippingMethodError{ShippingMethod: shippingMethod}
	}

	price := decimal.NewFromInt(vehiclePriceUsd)

	sourcingFee := decimal.Max(
		price.Mul(cfg.SourcingFeePercent),
		decimal.NewFromInt(cfg.SourcingFeeMinUsd),
	).Round(0).IntPart()

	shippingCost := decimal.NewFromInt(shippingBase).Mul(multiplier).Round(0).IntPart()

	dutiableValue := decimal.NewFromInt(vehiclePriceUsd + shippingCost)
	customsDuty := dutiableValue.Mul(cfg.CustomsDutyPercent).Round(0).IntPart()
	vat := dutiableValue.Add(decimal.NewFromInt(customsDuty)).Mul(cfg.VatPercent).Round(0).IntPart()
	levy := dutiableValue.Mul(cfg.LevyPercent).Round(0).IntPart()

	breakdown := CostBreakdown{
		VehiclePriceUsd:  vehiclePriceUsd,
		SourcingFeeUsd:   sourcingFee,
		InspectionFeeUsd: cfg.InspectionFeeUsd,
		UsHandlingFeeUsd: cfg.UsHandlingFeeUsd,
		ShippingCostUsd:  shippingCost,
		CustomsDutyUsd:   customsDuty,
		VatUsd:           vat,
		LevyUsd:          levy,
		ClearingFeeUsd:   cfg.ClearingFeeUsd,
		PortChargesUsd:   cfg.PortChargesUsd,
		LocalDeliveryUsd: cfg.LocalDeliveryFor(destinationState),
		ExchangeRate:     cfg.ExchangeRateNgnPerUsd,
	}
	breakdown.TotalUsd = breakdown.lineItemsSum()
	breakdown.TotalNgn = converter.UsdToNgn(breakdown.TotalUsd)

	deposit := decimal.NewFromInt(breakdown.TotalUsd).Mul(depositRate).Round(0).IntPart()

	return Quote{
		Breakdown:             breakdown,
		EstimatedDeliveryDays: timelineDays,
		DepositAmountUsd:      deposit,
	}, nil
}
