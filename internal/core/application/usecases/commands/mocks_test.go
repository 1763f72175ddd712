package commands_test

import (
	"context"
	"testing"

	"autoimport/internal/core/application/usecases/commands"
	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTransactionRef(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithPendingPayments(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) Initialize(
	ctx context.Context, orderID kernel.UUID, amountUsd int64, paymentType order.PaymentType,
) (ports.PaymentInitiation, error) {
	args := m.Called(ctx, orderID, amountUsd, paymentType)
	return args.Get(0).(ports.PaymentInitiation), args.Error(1)
}

func (m *MockPaymentProvider) Verify(ctx context.Context, ref string) (ports.PaymentVerification, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.PaymentVerification), args.Error(1)
}

type MockAuditLogger struct{ mock.Mock }

func (m *MockAuditLogger) Record(ctx context.Context, effect services.SideEffect) error {
	args := m.Called(ctx, effect)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(
	ctx context.Context, recipientID kernel.UUID, orderID kernel.UUID, message string,
) error {
	args := m.Called(ctx, recipientID, orderID, message)
	return args.Error(0)
}

// Test fixtures shared by the command handler tests.

func testVehicle(t *testing.T) order.VehicleSnapshot {
	t.Helper()
	vehicle, err := order.NewVehicleSnapshot(
		"listing-31", "Toyota", "Camry", 2019, pricing.VehicleTypeSedan, 15000)
	require.NoError(t, err)
	return vehicle
}

func testOrder(t *testing.T, buyerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "IMP-2024-TEST01", buyerID,
		testVehicle(t), pricing.ShippingMethodRoRo, "Lagos")
	require.NoError(t, err)

	quote, err := pricing.NewLandedCostCalculator().Calculate(
		15000, pricing.VehicleTypeSedan, pricing.ShippingMethodRoRo, "Lagos",
		pricing.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, o.AttachQuote(quote))
	return o
}

func testAdmin(t *testing.T) order.Actor {
	t.Helper()
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleAdmin)
	require.NoError(t, err)
	return actor
}

func testBuyer(t *testing.T, id kernel.UUID) order.Actor {
	t.Helper()
	actor, err := order.NewActor(id, order.RoleBuyer)
	require.NoError(t, err)
	return actor
}
