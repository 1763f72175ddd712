package pricing

import (
	"fmt"

	"autoimport/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// VehicleType categorizes vehicles for shipping purposes. Heavier and larger
// types take more vessel space and carry a higher shipping multiplier.
type VehicleType string

// Supported vehicle types. The multiplier table in Config must cover every
// type the caller intends to price; there is no fallback for unknown types.
const (
	VehicleTypeSedan  VehicleType = "Sedan"
	VehicleTypeSUV    VehicleType = "SUV"
	VehicleTypePickup VehicleType = "Pickup"
	VehicleTypeVan    VehicleType = "Van"
	VehicleTypeTruck  VehicleType = "Truck"
)

// ShippingMethod is the ocean freight method for the import.
type ShippingMethod string

const (
	// ShippingMethodRoRo is Roll-on/Roll-off vessel shipping: the vehicle is
	// driven onto the vessel. Cheaper and usually faster to book.
	ShippingMethodRoRo ShippingMethod = "RoRo"

	// ShippingMethodContainer ships the vehicle inside a sealed container.
	// More expensive but better protected.
	ShippingMethodContainer ShippingMethod = "Container"
)

// Config is the authoritative fee schedule for landed-cost calculations.
// It consolidates every constant the engine needs — fee percentages, flat
// fees, shipping bases and multipliers, customs rates, delivery fees and the
// exchange rate — into a single value passed explicitly into the calculator.
//
// Config is immutable per calculation by convention: callers construct it
// once (typically from DefaultConfig, overriding the exchange rate) and never
// mutate it afterwards.
//
// Invariants, enforced by Validate:
//   - every percentage is within [0, 1]
//   - every USD amount is >= 0
//   - the exchange rate is > 0
//   - the shipping base, multiplier and timeline tables are non-empty
type Config struct {
	// SourcingFeePercent is charged on the vehicle price for sourcing and
	// brokering the purchase, subject to SourcingFeeMinUsd.
	SourcingFeePercent decimal.Decimal
	SourcingFeeMinUsd  int64

	// InspectionFeeUsd covers the pre-purchase condition inspection in the US.
	InspectionFeeUsd int64

	// UsHandlingFeeUsd covers US-side towing, storage and export paperwork.
	UsHandlingFeeUsd int64

	// ShippingBaseUsd is the base ocean freight cost per shipping method,
	// before the vehicle-type multiplier is applied.
	ShippingBaseUsd map[ShippingMethod]int64

	// VehicleTypeMultipliers scales the shipping base by vehicle type.
	VehicleTypeMultipliers map[VehicleType]decimal.Decimal

	// Nigerian customs rates, assessed on the dutiable value (price + freight).
	CustomsDutyPercent decimal.Decimal
	VatPercent         decimal.Decimal
	LevyPercent        decimal.Decimal

	// ClearingFeeUsd and PortChargesUsd are flat Nigeria-side charges.
	ClearingFeeUsd int64
	PortChargesUsd int64

	// LocalDeliveryUsdByState is the last-mile delivery fee keyed by Nigerian
	// destination state. States not present fall back to
	// LocalDeliveryDefaultUsd; this is the only table with a silent default.
	LocalDeliveryUsdByState map[string]int64
	LocalDeliveryDefaultUsd int64

	// ExchangeRateNgnPerUsd converts the USD total into naira.
	ExchangeRateNgnPerUsd decimal.Decimal

	// TimelineDaysByShippingMethod estimates door-to-door delivery time.
	TimelineDaysByShippingMethod map[ShippingMethod]int
}

// DefaultConfig returns the published fee schedule. The exchange rate is a
// placeholder that deployments override from configuration.
func DefaultConfig() Config {
	return Config{
		SourcingFeePercent: decimal.RequireFromString("0.05"),
		SourcingFeeMinUsd:  250,

		InspectionFeeUsd: 150,
		UsHandlingFeeUsd: 350,

		ShippingBaseUsd: map[ShippingMethod]int64{
			ShippingMethodRoRo:      1100,
			ShippingMethodContainer: 1800,
		},
		VehicleTypeMultipliers: map[VehicleType]decimal.Decimal{
			VehicleTypeSedan:  decimal.RequireFromString("1.0"),
			VehicleTypeSUV:    decimal.RequireFromString("1.25"),
			VehicleTypePickup: decimal.RequireFromString("1.3"),
			VehicleTypeVan:    decimal.RequireFromString("1.4"),
			VehicleTypeTruck:  decimal.RequireFromString("1.6"),
		},

		CustomsDutyPercent: decimal.RequireFromString("0.35"),
		VatPercent:         decimal.RequireFromString("0.075"),
		LevyPercent:        decimal.RequireFromString("0.15"),

		ClearingFeeUsd: 800,
		PortChargesUsd: 300,

		LocalDeliveryUsdByState: map[string]int64{
			"Lagos":  100,
			"Ogun":   150,
			"Oyo":    180,
			"Abuja":  250,
			"Rivers": 300,
		},
		LocalDeliveryDefaultUsd: 200,

		ExchangeRateNgnPerUsd: decimal.RequireFromString("1500"),

		TimelineDaysByShippingMethod: map[ShippingMethod]int{
			ShippingMethodRoRo:      45,
			ShippingMethodContainer: 60,
		},
	}
}

// Validate checks the Config invariants. The calculator validates its config
// on every call, so an invalid schedule can never silently produce a quote.
func (c Config) Validate() error {
	percents := map[string]decimal.Decimal{
		"sourcing fee percent": c.SourcingFeePercent,
		"customs duty percent": c.CustomsDutyPercent,
		"vat percent":          c.VatPercent,
		"levy percent":         c.LevyPercent,
	}
	for name, p := range percents {
		if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(1)) {
			return errs.NewValueIsOutOfRangeError(name, p.String(), "0", "1")
		}
	}

	amounts := map[string]int64{
		"sourcing fee minimum":       c.SourcingFeeMinUsd,
		"inspection fee":             c.InspectionFeeUsd,
		"us handling fee":            c.UsHandlingFeeUsd,
		"clearing fee":               c.ClearingFeeUsd,
		"port charges":               c.PortChargesUsd,
		"default local delivery fee": c.LocalDeliveryDefaultUsd,
	}
	for name, a := range amounts {
		if a < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is not greater than or equal to 0", a))
		}
	}
	for method, base := range c.ShippingBaseUsd {
		if base < 0 {
			return errs.NewValueIsInvalidErrorWithCause("shipping base",
				fmt.Errorf("%d for method %s is not greater than or equal to 0", base, method))
		}
	}
	for state, fee := range c.LocalDeliveryUsdByState {
		if fee < 0 {
			return errs.NewValueIsInvalidErrorWithCause("local delivery fee",
				fmt.Errorf("%d for state %s is not greater than or equal to 0", fee, state))
		}
	}
	for vehicleType, multiplier := range c.VehicleTypeMultipliers {
		if !multiplier.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("vehicle type multiplier",
				fmt.Errorf("%s for type %s is not greater than 0", multiplier, vehicleType))
		}
	}

	if !c.ExchangeRateNgnPerUsd.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("exchange rate",
			fmt.Errorf("%s is not greater than 0", c.ExchangeRateNgnPerUsd))
	}

	if len(c.ShippingBaseUsd) == 0 {
		return errs.NewValueIsRequiredError("shipping base table")
	}
	if len(c.VehicleTypeMultipliers) == 0 {
		return errs.NewValueIsRequiredError("vehicle type multiplier table")
	}
	if len(c.TimelineDaysByShippingMethod) == 0 {
		return errs.NewValueIsRequiredError("timeline table")
	}

	return nil
}

// LocalDeliveryFor returns the last-mile delivery fee for a destination state,
// falling back to the configured default for unknown states.
func (c Config) LocalDeliveryFor(destinationState string) int64 {
	if fee, ok := c.LocalDeliveryUsdByState[destinationState]; ok {
		return fee
	}
	return c.LocalDeliveryDefaultUsd
}
