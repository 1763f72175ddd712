package pricing_test

import (
	"testing"

	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrencyConverter(t *testing.T) {
	t.Run("valid_rate", func(t *testing.T) {
		converter, err := pricing.NewCurrencyConverter(decimal.RequireFromString("1500"))
		require.NoError(t, err)
		require.NoError(t, converter.Validate())
		assert.True(t, converter.Rate().Equal(decimal.RequireFromString("1500")))
	})

	t.Run("zero_rate", func(t *testing.T) {
		_, err := pricing.NewCurrencyConverter(decimal.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_rate", func(t *testing.T) {
		_, err := pricing.NewCurrencyConverter(decimal.RequireFromString("-10"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var converter pricing.CurrencyConverter
		require.Error(t, converter.Validate())
		assert.Equal(t, pricing.ErrCurrencyConverterIsNotConstructed, converter.Validate())
	})
}

func TestCurrencyConverter_UsdToNgn(t *testing.T) {
	converter, err := pricing.NewCurrencyConverter(decimal.RequireFromString("1500"))
	require.NoError(t, err)

	assert.Equal(t, int64(1500000), converter.UsdToNgn(1000))
	assert.Equal(t, int64(0), converter.UsdToNgn(0))

	t.Run("rounds_to_whole_naira", func(t *testing.T) {
		fractional, err := pricing.NewCurrencyConverter(decimal.RequireFromString("1525.75"))
		require.NoError(t, err)

		// 3 * 1525.75 = 4577.25 -> 4577
		assert.Equal(t, int64(4577), fractional.UsdToNgn(3))
	})
}

func TestCurrencyConverter_NgnToUsd(t *testing.T) {
	converter, err := pricing.NewCurrencyConverter(decimal.RequireFromString("1500"))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), converter.NgnToUsd(1500000))

	t.Run("rounds_to_whole_usd", func(t *testing.T) {
		// 1000000 / 1500 = 666.67 -> 667
		assert.Equal(t, int64(667), converter.NgnToUsd(1000000))
	})
}
