package commands_test

import (
	"testing"

	"autoimport/internal/core/application/usecases/commands"
	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderAwaitingDeposit returns an order in DEPOSIT_PENDING with one pending
// deposit payment under the given transaction reference.
func orderAwaitingDeposit(t *testing.T, buyerID kernel.UUID, transactionRef string) *order.Order {
	t.Helper()
	aggregate := acceptedOrder(t, buyerID)

	payment, err := order.NewPayment(
		kernel.NewUUID(), aggregate.ID(), aggregate.DepositAmountUsd(),
		order.PaymentTypeDeposit, transactionRef)
	require.NoError(t, err)
	require.NoError(t, aggregate.AddPayment(payment))
	return aggregate
}

func TestConfirmPaymentCommandHandler_Handle_SettlesDepositAndAdvances(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	aggregate := orderAwaitingDeposit(t, buyerID, "PSK-REF-101")

	cmd, err := commands.NewConfirmPaymentCommand("PSK-REF-101")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByTransactionRef", mock.Anything, "PSK-REF-101").Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	provider := new(MockPaymentProvider)
	provider.On("Verify", mock.Anything, "PSK-REF-101").
		Return(ports.PaymentVerification{Settled: true, AmountUsd: aggregate.DepositAmountUsd()}, nil).Once()

	auditLogger := new(MockAuditLogger)
	auditLogger.On("Record", mock.Anything, mock.AnythingOfType("services.SideEffect")).
		Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, buyerID, aggregate.ID(), mock.AnythingOfType("string")).
		Return(nil).Once()

	h := commands.NewConfirmPaymentCommandHandler(
		factory, provider, auditLogger, notifier, testAdmin(t))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.DepositPaid, aggregate.Status())
	assert.True(t, aggregate.DepositSettled())
	assert.Equal(t, aggregate.DepositAmountUsd(), aggregate.TotalPaidUsd())
	provider.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_FailedVerification(t *testing.T) {
	ctx := t.Context()
	aggregate := orderAwaitingDeposit(t, kernel.NewUUID(), "PSK-REF-102")

	cmd, err := commands.NewConfirmPaymentCommand("PSK-REF-102")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByTransactionRef", mock.Anything, "PSK-REF-102").Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	provider := new(MockPaymentProvider)
	provider.On("Verify", mock.Anything, "PSK-REF-102").
		Return(ports.PaymentVerification{Settled: false}, nil).Once()

	h := commands.NewConfirmPaymentCommandHandler(
		factory, provider, new(MockAuditLogger), new(MockNotifier), testAdmin(t))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.DepositPending, aggregate.Status(), "failed payment must not advance the workflow")
	assert.False(t, aggregate.DepositSettled())
	payments := aggregate.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, order.PaymentStatusFailed, payments[0].Status())
}

func TestConfirmPaymentCommandHandler_Handle_UnknownReference(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConfirmPaymentCommand("PSK-REF-404")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByTransactionRef", mock.Anything, "PSK-REF-404").
			Return(nil, assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(
		factory, new(MockPaymentProvider), new(MockAuditLogger), new(MockNotifier), testAdmin(t))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
}
