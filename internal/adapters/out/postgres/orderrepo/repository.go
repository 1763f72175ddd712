package orderrepo

import (
	"context"
	"errors"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, payments included.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order row is updated in
// place; payment rows are upserted — new attempts are inserted, existing rows
// only ever change their status.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	payments := dto.Payments
	dto.Payments = nil

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(payments) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status"}),
			}).
			Create(&payments).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its payments, oldest payment first.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Payments", paymentOrdering).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTransactionRef retrieves the order owning the payment with the given
// provider transaction reference.
func (r *GormOrderRepository) GetByTransactionRef(ctx context.Context, transactionRef string) (*order.Order, error) {
	var payment PaymentDTO
	err := r.db.WithContext(ctx).First(&payment, "transaction_ref = ?", transactionRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transactionRef", transactionRef)
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(payment.OrderID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, orderID)
}

// GetAllWithPendingPayments retrieves every order that has at least one
// payment still in PENDING.
func (r *GormOrderRepository) GetAllWithPendingPayments(ctx context.Context) ([]*order.Order, error) {
	pendingOrders := r.db.
		Model(&PaymentDTO{}).
		Select("order_id").
		Where("status = ?", string(order.PaymentStatusPending))

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Payments", paymentOrdering).
		Find(&dtos, "id IN (?)", pendingOrders).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// paymentOrdering keeps restored payments in insertion order.
func paymentOrdering(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}
