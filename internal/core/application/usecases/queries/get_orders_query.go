package queries

import (
	"errors"
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves order summaries, optionally filtered by workflow
// status and/or owning buyer. Admins list everything; buyers are restricted
// to their own orders by the caller applying the buyer filter.
//
// Example:
//
//	query := NewGetOrdersQuery()
//	query, _ = query.WithStatus(order.InTransit)
//
//	handler := NewGetOrdersQueryHandler(db)
//	summaries, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	status    order.Status
	hasStatus bool
	buyerID   kernel.UUID
	hasBuyer  bool

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an unfiltered order listing query.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// WithStatus returns a copy of the query filtered to one workflow status.
func (q GetOrdersQuery) WithStatus(status order.Status) (GetOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	q.status = status
	q.hasStatus = true
	return q, nil
}

// WithBuyer returns a copy of the query filtered to one buyer's orders.
func (q GetOrdersQuery) WithBuyer(buyerID kernel.UUID) (GetOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	q.buyerID = buyerID
	q.hasBuyer = true
	return q, nil
}

// Status returns the status filter; the second result reports whether one is set.
func (q GetOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.hasStatus
}

// Buyer returns the buyer filter; the second result reports whether one is set.
func (q GetOrdersQuery) Buyer() (kernel.UUID, bool) {
	return q.buyerID, q.hasBuyer
}

// GetOrdersQueryResponse is one order summary row.
type GetOrdersQueryResponse struct {
	ID                 kernel.UUID `json:"id"`
	RequestNumber      string      `json:"requestNumber"`
	BuyerID            kernel.UUID `json:"buyerId"`
	Status             string      `json:"status"`
	StatusLabel        string      `json:"statusLabel"`
	VehicleDescription string      `json:"vehicleDescription"`
	TotalUsd           int64       `json:"totalUsd"`
	CreatedAt          time.Time   `json:"createdAt"`
	StatusChangedAt    time.Time   `json:"statusChangedAt"`
}
