package queries

import (
	"context"
	"fmt"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists order summaries from the database, newest
// first.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery().WithStatus(order.DepositPending)
//
//	summaries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query with whatever filters are set.
// Results are sorted by creation time, newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			request_number,
			buyer_id,
			status,
			vehicle_make,
			vehicle_model,
			vehicle_year,
			COALESCE((cost_breakdown->>'totalUsd')::bigint, 0),
			created_at,
			status_changed_at
		FROM orders
		WHERE 1=1
	`
	args := make([]any, 0, 2)
	if status, ok := query.Status(); ok {
		sqlQuery += " AND status = ?"
		args = append(args, status.String())
	}
	if buyerID, ok := query.Buyer(); ok {
		sqlQuery += " AND buyer_id = ?"
		args = append(args, buyerID.Bytes())
	}
	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id, buyerID uuid.UUID
		var status, vehicleMake, vehicleModel string
		var vehicleYear int

		err = rows.Scan(
			&id,
			&resp.RequestNumber,
			&buyerID,
			&status,
			&vehicleMake,
			&vehicleModel,
			&vehicleYear,
			&resp.TotalUsd,
			&resp.CreatedAt,
			&resp.StatusChangedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return nil, err
		}

		parsedStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = parsedStatus.String()
		resp.StatusLabel = parsedStatus.DisplayLabel()
		resp.VehicleDescription = fmt.Sprintf("%d %s %s", vehicleYear, vehicleMake, vehicleModel)

		summaries = append(summaries, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
