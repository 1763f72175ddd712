package pricing

import (
	"errors"
	"fmt"

	"autoimport/internal/pkg/errs"
	"autoimport/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCurrencyConverterIsNotConstructed is returned when a CurrencyConverter was
// not created through NewCurrencyConverter.
var ErrCurrencyConverterIsNotConstructed = errors.New(
	"CurrencyConverter must be created via NewCurrencyConverter constructor",
)

// CurrencyConverter converts between USD and NGN at a fixed configured rate.
//
// The converter is a value object: immutable, side-effect free, and safe for
// concurrent use. Both currencies are whole-number display currencies here,
// so every conversion rounds to the nearest whole unit.
type CurrencyConverter struct {
	rateNgnPerUsd decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCurrencyConverter creates a converter for the given NGN-per-USD rate.
// The rate must be greater than zero.
func NewCurrencyConverter(rateNgnPerUsd decimal.Decimal) (CurrencyConverter, error) {
	if !rateNgnPerUsd.IsPositive() {
		return CurrencyConverter{}, errs.NewValueIsInvalidErrorWithCause("exchange rate",
			fmt.Errorf("%s is not greater than 0", rateNgnPerUsd))
	}

	return CurrencyConverter{
		rateNgnPerUsd: rateNgnPerUsd,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the converter was created through the constructor.
func (c CurrencyConverter) Validate() error {
	return c.guard.Validate(ErrCurrencyConverterIsNotConstructed)
}

// Rate returns the configured NGN-per-USD exchange rate.
func (c CurrencyConverter) Rate() decimal.Decimal {
	return c.rateNgnPerUsd
}

// UsdToNgn converts a whole-USD amount to naira, rounded to the nearest naira.
func (c CurrencyConverter) UsdToNgn(amountUsd int64) int64 {
	return decimal.NewFromInt(amountUsd).Mul(c.rateNgnPerUsd).Round(0).IntPart()
}

// NgnToUsd converts a naira amount to whole USD, rounded to the nearest dollar.
func (c CurrencyConverter) NgnToUsd(amountNgn int64) int64 {
	return decimal.NewFromInt(amountNgn).Div(c.rateNgnPerUsd).Round(0).IntPart()
}
