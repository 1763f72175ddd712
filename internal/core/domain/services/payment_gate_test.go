package services_test

import (
	"testing"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptQuote(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, o.Apply(order.ActionSendQuote, ""))
	require.NoError(t, o.Apply(order.ActionAcceptQuote, ""))
}

func TestPaymentGateDerive(t *testing.T) {
	gate := services.NewPaymentGate()

	t.Run("no options before a quote is attached", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
		assert.Zero(t, options.RemainingBalanceUsd)
	})

	t.Run("no options until the buyer accepts the quote", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 20000)
		require.NoError(t, o.Apply(order.ActionSendQuote, ""))

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
	})

	t.Run("deposit or full payment before the deposit settles", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 20000)
		acceptQuote(t, o)

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.True(t, options.CanPayDeposit)
		assert.True(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
		assert.Equal(t, int64(6000), options.DepositAmountUsd)
		assert.Equal(t, int64(20000), options.RemainingBalanceUsd)
	})

	t.Run("balance only after a completed deposit", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 10000)
		acceptQuote(t, o)
		settleDeposit(t, o, 3000)

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.True(t, options.CanPayBalance)
		assert.Equal(t, int64(7000), options.RemainingBalanceUsd)
	})

	t.Run("nothing payable once the total is covered", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 10000)
		acceptQuote(t, o)
		settleDeposit(t, o, 3000)

		balance, err := order.NewPayment(
			kernel.NewUUID(), o.ID(), 7000, order.PaymentTypeBalance, "txn-bal-1")
		require.NoError(t, err)
		require.NoError(t, o.AddPayment(balance))
		_, err = o.SettlePayment("txn-bal-1")
		require.NoError(t, err)

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
		assert.Zero(t, options.RemainingBalanceUsd)
	})

	t.Run("nothing payable on terminal orders", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 10000)
		acceptQuote(t, o)
		require.NoError(t, o.Apply(order.ActionCancel, "listing withdrawn"))

		options, err := gate.Derive(o)

		require.NoError(t, err)
		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
	})
}

func TestPaymentGateDeriveFromFacts(t *testing.T) {
	gate := services.NewPaymentGate()

	t.Run("deposit or full before settlement", func(t *testing.T) {
		options := gate.DeriveFromFacts(order.DepositPending, 10000, 3000, 0, false)

		assert.True(t, options.CanPayDeposit)
		assert.True(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
		assert.Equal(t, int64(3000), options.DepositAmountUsd)
		assert.Equal(t, int64(10000), options.RemainingBalanceUsd)
	})

	t.Run("no deposit option when the deposit amount is not positive", func(t *testing.T) {
		options := gate.DeriveFromFacts(order.DepositPending, 10000, 0, 0, false)

		assert.False(t, options.CanPayDeposit)
		assert.True(t, options.CanPayFull)
		assert.False(t, options.CanPayBalance)
	})

	t.Run("balance only after settlement", func(t *testing.T) {
		options := gate.DeriveFromFacts(order.DepositPending, 10000, 3000, 3000, true)

		assert.False(t, options.CanPayDeposit)
		assert.False(t, options.CanPayFull)
		assert.True(t, options.CanPayBalance)
		assert.Equal(t, int64(7000), options.RemainingBalanceUsd)
	})
}

func TestPaymentGateAllowedAmount(t *testing.T) {
	gate := services.NewPaymentGate()

	t.Run("deposit and full amounts before settlement", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 20000)
		acceptQuote(t, o)

		amount, ok := gate.AllowedAmount(o, order.PaymentTypeDeposit)
		require.True(t, ok)
		assert.Equal(t, int64(6000), amount)

		amount, ok = gate.AllowedAmount(o, order.PaymentTypeFullPayment)
		require.True(t, ok)
		assert.Equal(t, int64(20000), amount)

		_, ok = gate.AllowedAmount(o, order.PaymentTypeBalance)
		assert.False(t, ok)
	})

	t.Run("balance amount after settlement", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		attachQuote(t, o, 20000)
		acceptQuote(t, o)
		settleDeposit(t, o, 6000)

		amount, ok := gate.AllowedAmount(o, order.PaymentTypeBalance)
		require.True(t, ok)
		assert.Equal(t, int64(14000), amount)

		_, ok = gate.AllowedAmount(o, order.PaymentTypeDeposit)
		assert.False(t, ok)
		_, ok = gate.AllowedAmount(o, order.PaymentTypeFullPayment)
		assert.False(t, ok)
	})
}
