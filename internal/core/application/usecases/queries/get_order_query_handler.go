package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/services"
	"autoimport/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its payment history straight
// from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQueryHandler struct {
	db   *gorm.DB
	gate services.PaymentGate
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, gate: services.NewPaymentGate()}
}

// Handle executes the query. The USD/NGN totals come out of the stored cost
// breakdown; the paid total is summed over completed payments.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, buyerID uuid.UUID
	var status, vehicleMake, vehicleModel string
	var vehicleYear int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			request_number,
			buyer_id,
			status,
			vehicle_make,
			vehicle_model,
			vehicle_year,
			shipping_method,
			destination_state,
			COALESCE((cost_breakdown->>'totalUsd')::bigint, 0),
			COALESCE((cost_breakdown->>'totalNgn')::bigint, 0),
			deposit_amount_usd,
			estimated_delivery_days,
			cancel_reason,
			created_at,
			status_changed_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.RequestNumber,
		&buyerID,
		&status,
		&vehicleMake,
		&vehicleModel,
		&vehicleYear,
		&resp.ShippingMethod,
		&resp.DestinationState,
		&resp.TotalUsd,
		&resp.TotalNgn,
		&resp.DepositAmountUsd,
		&resp.EstimatedDeliveryDays,
		&resp.CancelReason,
		&resp.CreatedAt,
		&resp.StatusChangedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	parsedStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = parsedStatus.String()
	resp.StatusLabel = parsedStatus.DisplayLabel()
	resp.VehicleDescription = fmt.Sprintf("%d %s %s", vehicleYear, vehicleMake, vehicleModel)

	if resp.Payments, resp.TotalPaidUsd, err = h.loadPayments(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.PaymentOptions = h.gate.DeriveFromFacts(
		parsedStatus, resp.TotalUsd, resp.DepositAmountUsd, resp.TotalPaidUsd,
		depositSettled(resp.Payments))

	return resp, nil
}

// depositSettled reports whether a completed deposit or full payment exists
// among the payment views.
func depositSettled(payments []PaymentView) bool {
	for _, p := range payments {
		if p.Status != string(order.PaymentStatusCompleted) {
			continue
		}
		if p.PaymentType == string(order.PaymentTypeDeposit) ||
			p.PaymentType == string(order.PaymentTypeFullPayment) {
			return true
		}
	}
	return false
}

// loadPayments reads the payment attempts for an order, oldest first, and
// sums the completed amounts.
func (h GetOrderQueryHandler) loadPayments(
	ctx context.Context, orderID kernel.UUID,
) ([]PaymentView, int64, error) {
	payments := make([]PaymentView, 0)
	var totalPaid int64

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			transaction_ref,
			payment_type,
			status,
			amount_usd
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var view PaymentView
		if err = rows.Scan(&view.TransactionRef, &view.PaymentType, &view.Status, &view.AmountUsd); err != nil {
			return nil, 0, err
		}
		if view.Status == string(order.PaymentStatusCompleted) {
			totalPaid += view.AmountUsd
		}
		payments = append(payments, view)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return payments, totalPaid, nil
}
