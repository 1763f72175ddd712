// Package auditrepo persists the workflow audit trail. Audit rows are
// append-only: every successful transition produces exactly one record and
// records are never updated or deleted.
package auditrepo

import (
	"context"
	"time"

	"autoimport/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecordDTO represents one workflow transition in the audit trail.
type AuditRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Action     string    `gorm:"not null"`
	FromStatus string    `gorm:"not null"`
	ToStatus   string    `gorm:"not null"`
	Reason     string
	OccurredAt time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for audit records.
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// GormAuditLogger implements ports.AuditLogger on top of GORM.
type GormAuditLogger struct {
	db *gorm.DB
}

// NewGormAuditLogger creates an audit logger writing to the audit_records table.
func NewGormAuditLogger(db *gorm.DB) *GormAuditLogger {
	return &GormAuditLogger{db: db}
}

// Record appends one transition to the audit trail.
func (l *GormAuditLogger) Record(ctx context.Context, effect services.SideEffect) error {
	record := AuditRecordDTO{
		ID:         uuid.New(),
		OrderID:    effect.OrderID.Bytes(),
		ActorID:    effect.ActorID.Bytes(),
		Action:     string(effect.Action),
		FromStatus: effect.FromStatus.String(),
		ToStatus:   effect.ToStatus.String(),
		Reason:     effect.Reason,
		OccurredAt: effect.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&record).Error
}
