package services

import (
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
)

// SideEffectKind discriminates the side effects a successful transition
// produces. Effects are descriptions, not executions: the workflow engine
// returns them and the application layer carries them out after the order
// change has been committed, so a failed notification can never roll back a
// legitimate status change.
type SideEffectKind string

const (
	SideEffectAudit  SideEffectKind = "audit"
	SideEffectNotify SideEffectKind = "notify"
)

// SideEffect is one post-transition obligation.
type SideEffect struct {
	Kind SideEffectKind

	// Audit fields, set for every transition.
	OrderID    kernel.UUID
	ActorID    kernel.UUID
	Action     order.Action
	FromStatus order.Status
	ToStatus   order.Status
	Reason     string
	OccurredAt time.Time

	// Notify fields, set when the buyer should hear about the change.
	RecipientID kernel.UUID
	Message     string
}
