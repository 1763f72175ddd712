package commands_test

import (
	"testing"

	"autoimport/internal/core/application/usecases/commands"
	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateImportRequestCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateImportRequestCommand(
			kernel.NewUUID(), kernel.NewUUID(), testVehicle(t),
			pricing.ShippingMethodContainer, "Abuja")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, pricing.ShippingMethodContainer, cmd.ShippingMethod())
		assert.Equal(t, "Abuja", cmd.DestinationState())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCreateImportRequestCommand(
			invalidID, kernel.NewUUID(), testVehicle(t),
			pricing.ShippingMethodRoRo, "Lagos")

		require.Error(t, err)
	})

	t.Run("should fail with unconstructed vehicle", func(t *testing.T) {
		var vehicle order.VehicleSnapshot

		_, err := commands.NewCreateImportRequestCommand(
			kernel.NewUUID(), kernel.NewUUID(), vehicle,
			pricing.ShippingMethodRoRo, "Lagos")

		require.Error(t, err)
	})

	t.Run("should fail with empty destination", func(t *testing.T) {
		_, err := commands.NewCreateImportRequestCommand(
			kernel.NewUUID(), kernel.NewUUID(), testVehicle(t),
			pricing.ShippingMethodRoRo, "")

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateImportRequestCommand

		require.ErrorIs(t, cmd.Validate(),
			commands.ErrCreateImportRequestCommandIsNotConstructed)
	})
}
