// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored in its canonical string form so the database reads the same
// way the API does. The cost breakdown is stored as a JSON document: it is
// derived data, always written and read as a whole.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestNumber string    `gorm:"uniqueIndex;not null"`
	BuyerID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Status        string    `gorm:"index;not null"`

	VehicleListingID string
	VehicleMake      string
	VehicleModel     string
	VehicleYear      int
	VehicleType      string
	VehiclePriceUsd  int64

	ShippingMethod   string
	DestinationState string

	QuotedPriceUsd        int64
	CostBreakdown         *pricing.CostBreakdown `gorm:"type:jsonb;serializer:json"`
	DepositAmountUsd      int64
	EstimatedDeliveryDays int

	CancelReason string

	CreatedAt       time.Time
	StatusChangedAt time.Time

	Payments []PaymentDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PaymentDTO represents one payment attempt row. Rows are append-only; only
// the status column ever changes after insert.
type PaymentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AmountUsd      int64
	PaymentType    string
	Status         string
	TransactionRef string    `gorm:"uniqueIndex;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order domain aggregate to its database representation,
// payments included.
func fromDomain(aggregate *order.Order) OrderDTO {
	vehicle := aggregate.Vehicle()

	payments := aggregate.Payments()
	paymentDTOs := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		paymentDTOs = append(paymentDTOs, PaymentDTO{
			ID:             p.ID().Bytes(),
			OrderID:        p.OrderID().Bytes(),
			AmountUsd:      p.AmountUsd(),
			PaymentType:    string(p.Type()),
			Status:         string(p.Status()),
			TransactionRef: p.TransactionRef(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RequestNumber: aggregate.RequestNumber(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		Status:        aggregate.Status().String(),

		VehicleListingID: vehicle.ListingID(),
		VehicleMake:      vehicle.Make(),
		VehicleModel:     vehicle.Model(),
		VehicleYear:      vehicle.Year(),
		VehicleType:      string(vehicle.VehicleType()),
		VehiclePriceUsd:  vehicle.PriceUsd(),

		ShippingMethod:   string(aggregate.ShippingMethod()),
		DestinationState: aggregate.DestinationState(),

		QuotedPriceUsd:        aggregate.QuotedPriceUsd(),
		CostBreakdown:         aggregate.CostBreakdown(),
		DepositAmountUsd:      aggregate.DepositAmountUsd(),
		EstimatedDeliveryDays: aggregate.EstimatedDeliveryDays(),

		CancelReason: aggregate.CancelReason(),

		CreatedAt:       aggregate.CreatedAt(),
		StatusChangedAt: aggregate.StatusChangedAt(),

		Payments: paymentDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including payments using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := order.NewVehicleSnapshot(
		dto.VehicleListingID,
		dto.VehicleMake,
		dto.VehicleModel,
		dto.VehicleYear,
		pricing.VehicleType(dto.VehicleType),
		dto.VehiclePriceUsd,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	payments := make([]order.Payment, 0, len(dto.Payments))
	for _, p := range dto.Payments {
		payment, paymentErr := toPaymentDomain(p)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, payment)
	}

	return order.RestoreOrder(
		id,
		dto.RequestNumber,
		buyerID,
		vehicle,
		pricing.ShippingMethod(dto.ShippingMethod),
		dto.DestinationState,
		status,
		dto.QuotedPriceUsd,
		dto.CostBreakdown,
		dto.DepositAmountUsd,
		dto.EstimatedDeliveryDays,
		payments,
		dto.CancelReason,
		dto.CreatedAt,
		dto.StatusChangedAt,
	)
}

func toPaymentDomain(dto PaymentDTO) (order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Payment{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Payment{}, err
	}

	return order.RestorePayment(
		id,
		orderID,
		dto.AmountUsd,
		order.PaymentType(dto.PaymentType),
		order.PaymentStatus(dto.Status),
		dto.TransactionRef,
	)
}
