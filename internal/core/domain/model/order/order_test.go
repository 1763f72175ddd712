package order_test

import (
	"testing"
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVehicle(t *testing.T) order.VehicleSnapshot {
	t.Helper()
	vehicle, err := order.NewVehicleSnapshot(
		"listing-8841", "Toyota", "Camry", 2019, pricing.VehicleTypeSedan, 15000)
	require.NoError(t, err)
	return vehicle
}

func buildOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "IMP-2024-0001", kernel.NewUUID(),
		buildVehicle(t), pricing.ShippingMethodRoRo, "Lagos")
	require.NoError(t, err)
	return o
}

func buildQuote(t *testing.T) pricing.Quote {
	t.Helper()
	calculator := pricing.NewLandedCostCalculator()
	quote, err := calculator.Calculate(
		15000, pricing.VehicleTypeSedan, pricing.ShippingMethodRoRo, "Lagos",
		pricing.DefaultConfig())
	require.NoError(t, err)
	return quote
}

// advanceTo walks the order along the happy path until it reaches the target.
func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	for o.Status() != target {
		action, ok := order.ForwardActionFrom(o.Status())
		require.True(t, ok, "stuck at %s", o.Status())
		require.NoError(t, o.Apply(action, ""))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in pending quote", func(t *testing.T) {
		buyerID := kernel.NewUUID()

		o, err := order.NewOrder(
			kernel.NewUUID(), "IMP-2024-0042", buyerID,
			buildVehicle(t), pricing.ShippingMethodContainer, "Abuja")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.PendingQuote, o.Status())
		assert.Equal(t, "IMP-2024-0042", o.RequestNumber())
		assert.True(t, o.BuyerID().IsEqual(buyerID))
		assert.Equal(t, pricing.ShippingMethodContainer, o.ShippingMethod())
		assert.Equal(t, "Abuja", o.DestinationState())
		assert.Equal(t, int64(15000), o.QuotedPriceUsd())
		assert.Nil(t, o.CostBreakdown())
		assert.Zero(t, o.TotalCostUsd())
		assert.Empty(t, o.Payments())
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, o.CreatedAt(), o.StatusChangedAt())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "IMP-2024-0042", kernel.NewUUID(),
			buildVehicle(t), pricing.ShippingMethodRoRo, "Lagos")

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with empty request number", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(),
			buildVehicle(t), pricing.ShippingMethodRoRo, "Lagos")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unconstructed vehicle snapshot", func(t *testing.T) {
		var vehicle order.VehicleSnapshot

		o, err := order.NewOrder(
			kernel.NewUUID(), "IMP-2024-0042", kernel.NewUUID(),
			vehicle, pricing.ShippingMethodRoRo, "Lagos")

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with empty destination state", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "IMP-2024-0042", kernel.NewUUID(),
			buildVehicle(t), pricing.ShippingMethodRoRo, "")

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrderAttachQuote(t *testing.T) {
	t.Run("should attach quote before acceptance", func(t *testing.T) {
		o := buildOrder(t)
		quote := buildQuote(t)

		err := o.AttachQuote(quote)

		require.NoError(t, err)
		require.NotNil(t, o.CostBreakdown())
		assert.Equal(t, quote.Breakdown.TotalUsd, o.TotalCostUsd())
		assert.Equal(t, quote.DepositAmountUsd, o.DepositAmountUsd())
		assert.Equal(t, quote.EstimatedDeliveryDays, o.EstimatedDeliveryDays())
	})

	t.Run("should allow re-quoting while quote sent", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AttachQuote(buildQuote(t)))
		require.NoError(t, o.Apply(order.ActionSendQuote, ""))

		err := o.AttachQuote(buildQuote(t))

		require.NoError(t, err)
	})

	t.Run("should refuse once buyer accepted", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AttachQuote(buildQuote(t)))
		advanceTo(t, o, order.DepositPending)

		err := o.AttachQuote(buildQuote(t))

		require.ErrorIs(t, err, order.ErrQuoteNotAttachable)
	})
}

func TestOrderApplyForward(t *testing.T) {
	t.Run("should walk the entire happy path to delivered", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AttachQuote(buildQuote(t)))

		advanceTo(t, o, order.Delivered)

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("should reject action from wrong state", func(t *testing.T) {
		o := buildOrder(t)

		err := o.Apply(order.ActionShip, "")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.PendingQuote, o.Status(), "failed transition must not mutate")
	})

	t.Run("should reject re-applying an action", func(t *testing.T) {
		o := buildOrder(t)
		advanceTo(t, o, order.InspectionPending)

		err := o.Apply(order.ActionVerify, "")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "verify")
		assert.Contains(t, err.Error(), "INSPECTION_PENDING")
	})

	t.Run("should reject unknown action", func(t *testing.T) {
		o := buildOrder(t)

		err := o.Apply(order.Action("teleport"), "")

		require.ErrorIs(t, err, order.ErrUnknownAction)
	})

	t.Run("should stamp status change time", func(t *testing.T) {
		o := buildOrder(t)
		created := o.StatusChangedAt()
		time.Sleep(5 * time.Millisecond)

		require.NoError(t, o.Apply(order.ActionSendQuote, ""))

		assert.True(t, o.StatusChangedAt().After(created))
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("should cancel with reason from any active state", func(t *testing.T) {
		o := buildOrder(t)
		advanceTo(t, o, order.InTransit)

		err := o.Apply(order.ActionCancel, "vehicle damaged in port fire")

		require.NoError(t, err)
		assert.Equal(t, order.Canceled, o.Status())
		assert.Equal(t, "vehicle damaged in port fire", o.CancelReason())
	})

	t.Run("should require a reason", func(t *testing.T) {
		o := buildOrder(t)

		err := o.Apply(order.ActionCancel, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.PendingQuote, o.Status())
	})

	t.Run("should reject whitespace-only reason", func(t *testing.T) {
		o := buildOrder(t)

		err := o.Apply(order.ActionCancel, "   \t ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject cancel on terminal order", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.Apply(order.ActionCancel, "changed my mind"))

		err := o.Apply(order.ActionCancel, "again")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderRefund(t *testing.T) {
	addCompletedDeposit := func(t *testing.T, o *order.Order, amount int64) {
		t.Helper()
		payment, err := order.NewPayment(
			kernel.NewUUID(), o.ID(), amount, order.PaymentTypeDeposit, "txn-777")
		require.NoError(t, err)
		require.NoError(t, o.AddPayment(payment))
		_, err = o.SettlePayment("txn-777")
		require.NoError(t, err)
	}

	t.Run("should refund after a completed payment", func(t *testing.T) {
		o := buildOrder(t)
		advanceTo(t, o, order.DepositPaid)
		addCompletedDeposit(t, o, 3000)

		err := o.Apply(order.ActionRefund, "")

		require.NoError(t, err)
		assert.Equal(t, order.Refunded, o.Status())
	})

	t.Run("should reject refund without completed payment", func(t *testing.T) {
		o := buildOrder(t)
		advanceTo(t, o, order.DepositPending)

		err := o.Apply(order.ActionRefund, "")

		require.ErrorIs(t, err, order.ErrNoCompletedPayment)
		assert.Equal(t, order.DepositPending, o.Status())
	})

	t.Run("should reject refund on terminal order", func(t *testing.T) {
		o := buildOrder(t)
		addCompletedDeposit(t, o, 3000)
		require.NoError(t, o.Apply(order.ActionCancel, "listing withdrawn"))

		err := o.Apply(order.ActionRefund, "")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderPayments(t *testing.T) {
	newPayment := func(t *testing.T, o *order.Order, ref string, amount int64, pt order.PaymentType) order.Payment {
		t.Helper()
		payment, err := order.NewPayment(kernel.NewUUID(), o.ID(), amount, pt, ref)
		require.NoError(t, err)
		return payment
	}

	t.Run("should reject payment for another order", func(t *testing.T) {
		o := buildOrder(t)
		other := buildOrder(t)
		payment := newPayment(t, other, "txn-1", 3000, order.PaymentTypeDeposit)

		err := o.AddPayment(payment)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject duplicate transaction reference", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-1", 3000, order.PaymentTypeDeposit)))

		err := o.AddPayment(newPayment(t, o, "txn-1", 3000, order.PaymentTypeDeposit))

		require.ErrorIs(t, err, order.ErrDuplicateTransactionRef)
	})

	t.Run("should settle a pending payment once", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-1", 3000, order.PaymentTypeDeposit)))

		settled, err := o.SettlePayment("txn-1")

		require.NoError(t, err)
		assert.True(t, settled.IsCompleted())
		assert.Equal(t, int64(3000), o.TotalPaidUsd())

		_, err = o.SettlePayment("txn-1")
		require.ErrorIs(t, err, order.ErrPaymentAlreadySettled)
	})

	t.Run("should fail a pending payment and keep total at zero", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-1", 3000, order.PaymentTypeDeposit)))

		failed, err := o.FailPayment("txn-1")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusFailed, failed.Status())
		assert.Zero(t, o.TotalPaidUsd())
		assert.Empty(t, o.PendingPayments())
	})

	t.Run("should report unknown transaction reference", func(t *testing.T) {
		o := buildOrder(t)

		_, err := o.SettlePayment("txn-missing")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("deposit settled by deposit or full payment only", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-bal", 7000, order.PaymentTypeBalance)))
		_, err := o.SettlePayment("txn-bal")
		require.NoError(t, err)
		assert.False(t, o.DepositSettled())

		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-full", 17000, order.PaymentTypeFullPayment)))
		_, err = o.SettlePayment("txn-full")
		require.NoError(t, err)
		assert.True(t, o.DepositSettled())
	})

	t.Run("payments accessor returns a copy", func(t *testing.T) {
		o := buildOrder(t)
		require.NoError(t, o.AddPayment(newPayment(t, o, "txn-1", 3000, order.PaymentTypeDeposit)))

		payments := o.Payments()
		require.Len(t, payments, 1)
		payments[0] = order.Payment{}

		assert.NoError(t, o.Payments()[0].Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a mid-flight order", func(t *testing.T) {
		source := buildOrder(t)
		require.NoError(t, source.AttachQuote(buildQuote(t)))
		advanceTo(t, source, order.DepositPaid)

		restored, err := order.RestoreOrder(
			source.ID(), source.RequestNumber(), source.BuyerID(),
			source.Vehicle(), source.ShippingMethod(), source.DestinationState(),
			source.Status(), source.QuotedPriceUsd(), source.CostBreakdown(),
			source.DepositAmountUsd(), source.EstimatedDeliveryDays(),
			source.Payments(), source.CancelReason(),
			source.CreatedAt(), source.StatusChangedAt())

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(source))
		assert.Equal(t, order.DepositPaid, restored.Status())
		assert.Equal(t, source.TotalCostUsd(), restored.TotalCostUsd())
		assert.Equal(t, source.StatusChangedAt(), restored.StatusChangedAt())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		source := buildOrder(t)

		_, err := order.RestoreOrder(
			source.ID(), source.RequestNumber(), source.BuyerID(),
			source.Vehicle(), source.ShippingMethod(), source.DestinationState(),
			order.Status(99), 0, nil, 0, 0, nil, "",
			source.CreatedAt(), source.StatusChangedAt())

		require.Error(t, err)
	})
}
