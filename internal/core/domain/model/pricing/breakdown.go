package pricing

import (
	"fmt"

	"autoimport/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CostBreakdown is the full landed-cost statement for one vehicle import.
// All amounts are whole USD except TotalNgn (whole naira) and ExchangeRate.
//
// A breakdown is derived data: it is computed once by the calculator and
// never mutated afterwards. TotalUsd is always the exact sum of the line
// items above it, and TotalNgn is TotalUsd at ExchangeRate rounded to the
// nearest naira.
type CostBreakdown struct {
	VehiclePriceUsd  int64           `json:"vehiclePriceUsd"`
	SourcingFeeUsd   int64           `json:"sourcingFeeUsd"`
	InspectionFeeUsd int64           `json:"inspectionFeeUsd"`
	UsHandlingFeeUsd int64           `json:"usHandlingFeeUsd"`
	ShippingCostUsd  int64           `json:"shippingCostUsd"`
	CustomsDutyUsd   int64           `json:"customsDutyUsd"`
	VatUsd           int64           `json:"vatUsd"`
	LevyUsd          int64           `json:"levyUsd"`
	ClearingFeeUsd   int64           `json:"clearingFeeUsd"`
	PortChargesUsd   int64           `json:"portChargesUsd"`
	LocalDeliveryUsd int64           `json:"localDeliveryUsd"`
	TotalUsd         int64           `json:"totalUsd"`
	TotalNgn         int64           `json:"totalNgn"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
}

// lineItemsSum adds up every non-total USD field.
func (b CostBreakdown) lineItemsSum() int64 {
	return b.VehiclePriceUsd +
		b.SourcingFeeUsd +
		b.InspectionFeeUsd +
		b.UsHandlingFeeUsd +
		b.ShippingCostUsd +
		b.CustomsDutyUsd +
		b.VatUsd +
		b.LevyUsd +
		b.ClearingFeeUsd +
		b.PortChargesUsd +
		b.LocalDeliveryUsd
}

// Validate checks the breakdown's internal consistency: the USD total must
// equal the sum of the line items, and the naira total must be the USD total
// at the recorded exchange rate, rounded to the nearest naira.
//
// Breakdowns restored from persistence are validated before use so a corrupt
// row cannot feed the payment gate.
func (b CostBreakdown) Validate() error {
	if sum := b.lineItemsSum(); sum != b.TotalUsd {
		return errs.NewValueIsInvalidErrorWithCause("total usd",
			fmt.Errorf("%d does not equal line item sum %d", b.TotalUsd, sum))
	}

	converter, err := NewCurrencyConverter(b.ExchangeRate)
	if err != nil {
		return err
	}
	if expectedNgn := converter.UsdToNgn(b.TotalUsd); b.TotalNgn != expectedNgn {
		return errs.NewValueIsInvalidErrorWithCause("total ngn",
			fmt.Errorf("%d does not equal %d usd at rate %s", b.TotalNgn, b.TotalUsd, b.ExchangeRate))
	}

	return nil
}
