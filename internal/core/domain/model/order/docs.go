// Package order contains the Order aggregate and its workflow.
//
// An Order is a vehicle import request: an immutable vehicle snapshot, the
// attached landed-cost quote, the payment attempts made against it and its
// position in the import workflow. The workflow is a linear progression from
// PENDING_QUOTE to DELIVERED with cancel and refund side branches; the
// allowed transitions live in a single registry so there is exactly one
// source of truth for the state machine.
//
// Invariants enforced here:
//   - every transition is validated against the registry; no state skipping
//   - terminal orders (DELIVERED, CANCELED, REFUNDED) accept no transitions
//   - cancellation always carries a reason
//   - refund requires at least one completed payment
//   - payments are append-only; a settled payment never changes
//
// Role requirements per transition are declared in the registry but enforced
// by the workflow engine in the services package, which also owns the side
// effects (audit records, buyer notifications) of a successful transition.
package order
