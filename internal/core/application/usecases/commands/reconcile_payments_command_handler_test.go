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

func TestReconcilePaymentsCommandHandler_Handle_SettlesPending(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	settledOrder := orderAwaitingDeposit(t, buyerID, "PSK-REF-201")
	abandonedOrder := orderAwaitingDeposit(t, kernel.NewUUID(), "PSK-REF-202")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllWithPendingPayments", mock.Anything).
			Return([]*order.Order{settledOrder, abandonedOrder}, nil).Once(),
		repo.On("Update", mock.Anything, settledOrder).Return(nil).Once(),
		repo.On("Update", mock.Anything, abandonedOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	provider := new(MockPaymentProvider)
	provider.On("Verify", mock.Anything, "PSK-REF-201").
		Return(ports.PaymentVerification{Settled: true, AmountUsd: settledOrder.DepositAmountUsd()}, nil).Once()
	provider.On("Verify", mock.Anything, "PSK-REF-202").
		Return(ports.PaymentVerification{Settled: false}, nil).Once()

	auditLogger := new(MockAuditLogger)
	auditLogger.On("Record", mock.Anything, mock.AnythingOfType("services.SideEffect")).
		Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, buyerID, settledOrder.ID(), mock.AnythingOfType("string")).
		Return(nil).Once()

	h := commands.NewReconcilePaymentsCommandHandler(
		factory, provider, auditLogger, notifier, testAdmin(t))
	err := h.Handle(ctx, commands.NewReconcilePaymentsCommand())

	require.NoError(t, err)
	assert.Equal(t, order.DepositPaid, settledOrder.Status())
	assert.Equal(t, order.DepositPending, abandonedOrder.Status())
	assert.Equal(t, order.PaymentStatusFailed, abandonedOrder.Payments()[0].Status())
	provider.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcilePaymentsCommandHandler_Handle_ProviderErrorSkipsPayment(t *testing.T) {
	ctx := t.Context()
	stuckOrder := orderAwaitingDeposit(t, kernel.NewUUID(), "PSK-REF-301")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllWithPendingPayments", mock.Anything).
			Return([]*order.Order{stuckOrder}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	provider := new(MockPaymentProvider)
	provider.On("Verify", mock.Anything, "PSK-REF-301").
		Return(ports.PaymentVerification{}, assert.AnError).Once()

	h := commands.NewReconcilePaymentsCommandHandler(
		factory, provider, new(MockAuditLogger), new(MockNotifier), testAdmin(t))
	err := h.Handle(ctx, commands.NewReconcilePaymentsCommand())

	require.NoError(t, err, "one unreachable payment must not fail the sweep")
	assert.Equal(t, order.PaymentStatusPending, stuckOrder.Payments()[0].Status())
	repo.AssertExpectations(t)
}

func TestReconcilePaymentsCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllWithPendingPayments", mock.Anything).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentsCommandHandler(
		factory, new(MockPaymentProvider), new(MockAuditLogger), new(MockNotifier), testAdmin(t))
	err := h.Handle(ctx, commands.NewReconcilePaymentsCommand())

	require.NoError(t, err)
}
