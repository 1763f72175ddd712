// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read directly from the database,
// returning flat response structures shaped for presentation.
package queries

import (
	"errors"
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full cost breakdown and payment
// history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PaymentView is one payment attempt in an order view.
type PaymentView struct {
	TransactionRef string `json:"transactionRef"`
	PaymentType    string `json:"paymentType"`
	Status         string `json:"status"`
	AmountUsd      int64  `json:"amountUsd"`
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID                    kernel.UUID             `json:"id"`
	RequestNumber         string                  `json:"requestNumber"`
	BuyerID               kernel.UUID             `json:"buyerId"`
	Status                string                  `json:"status"`
	StatusLabel           string                  `json:"statusLabel"`
	VehicleDescription    string                  `json:"vehicleDescription"`
	ShippingMethod        string                  `json:"shippingMethod"`
	DestinationState      string                  `json:"destinationState"`
	TotalUsd              int64                   `json:"totalUsd"`
	TotalNgn              int64                   `json:"totalNgn"`
	DepositAmountUsd      int64                   `json:"depositAmountUsd"`
	TotalPaidUsd          int64                   `json:"totalPaidUsd"`
	EstimatedDeliveryDays int                     `json:"estimatedDeliveryDays"`
	CancelReason          string                  `json:"cancelReason,omitempty"`
	Payments              []PaymentView           `json:"payments"`
	PaymentOptions        services.PaymentOptions `json:"paymentOptions"`
	CreatedAt             time.Time               `json:"createdAt"`
	StatusChangedAt       time.Time               `json:"statusChangedAt"`
}
