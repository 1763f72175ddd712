package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrQuoteNotAttachable indicates an attempt to attach a cost breakdown
	// after the buyer has already committed money to the quoted amounts.
	ErrQuoteNotAttachable = errors.New("quote can no longer be changed on this order")

	// ErrDuplicateTransactionRef indicates a payment attempt reusing an
	// existing provider reference.
	ErrDuplicateTransactionRef = errors.New("transaction reference already exists on this order")
)

// Order represents a vehicle import request in the system. It is the aggregate
// root that manages the import lifecycle from quote through payment, shipping
// and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, request number and buyer
//   - Carries an immutable snapshot of the requested vehicle
//   - Status transitions follow the workflow registry; terminal states are final
//   - Payments are append-only; settled payments never change
//   - cancelReason is set only by the cancel transition
//   - Can only be created through NewOrder / RestoreOrder
//
// Orders are never deleted. All mutation after creation goes through the
// workflow engine or the payment methods below; every status change stamps
// statusChangedAt.
type Order struct {
	id            kernel.UUID
	requestNumber string
	buyerID       kernel.UUID

	status Status

	vehicle          VehicleSnapshot
	shippingMethod   pricing.ShippingMethod
	destinationState string

	quotedPriceUsd        int64
	breakdown             *pricing.CostBreakdown
	depositAmountUsd      int64
	estimatedDeliveryDays int

	payments []Payment

	cancelReason string

	createdAt       time.Time
	statusChangedAt time.Time

	isConstructed bool
}

// NewOrder creates a new import request in PENDING_QUOTE status.
//
// The quoted price starts at the snapshot's listed price; the full cost
// breakdown is attached separately via AttachQuote once the pricing engine
// has run.
func NewOrder(
	id kernel.UUID,
	requestNumber string,
	buyerID kernel.UUID,
	vehicle VehicleSnapshot,
	shippingMethod pricing.ShippingMethod,
	destinationState string,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if requestNumber == "" {
		return nil, errs.NewValueIsRequiredError("request number")
	}
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}
	if shippingMethod == "" {
		return nil, errs.NewValueIsRequiredError("shipping method")
	}
	if destinationState == "" {
		return nil, errs.NewValueIsRequiredError("destination state")
	}

	now := time.Now().UTC()
	return &Order{
		id:               id,
		requestNumber:    requestNumber,
		buyerID:          buyerID,
		status:           PendingQuote,
		vehicle:          vehicle,
		shippingMethod:   shippingMethod,
		destinationState: destinationState,
		quotedPriceUsd:   vehicle.PriceUsd(),
		createdAt:        now,
		statusChangedAt:  now,
		isConstructed:    true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence, bypassing the initial
// status but re-validating every component.
func RestoreOrder(
	id kernel.UUID,
	requestNumber string,
	buyerID kernel.UUID,
	vehicle VehicleSnapshot,
	shippingMethod pricing.ShippingMethod,
	destinationState string,
	status Status,
	quotedPriceUsd int64,
	breakdown *pricing.CostBreakdown,
	depositAmountUsd int64,
	estimatedDeliveryDays int,
	payments []Payment,
	cancelReason string,
	createdAt time.Time,
	statusChangedAt time.Time,
) (*Order, error) {
	restored, err := NewOrder(id, requestNumber, buyerID, vehicle, shippingMethod, destinationState)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if breakdown != nil {
		if err = breakdown.Validate(); err != nil {
			return nil, err
		}
	}
	for _, payment := range payments {
		if err = payment.Validate(); err != nil {
			return nil, err
		}
	}

	restored.status = status
	restored.quotedPriceUsd = quotedPriceUsd
	restored.breakdown = breakdown
	restored.depositAmountUsd = depositAmountUsd
	restored.estimatedDeliveryDays = estimatedDeliveryDays
	restored.payments = payments
	restored.cancelReason = cancelReason
	restored.createdAt = createdAt
	restored.statusChangedAt = statusChangedAt
	return restored, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RequestNumber returns the human-readable unique request number.
func (o *Order) RequestNumber() string {
	return o.requestNumber
}

// BuyerID returns the identity of the buyer who owns this order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Status returns the current workflow status.
func (o *Order) Status() Status {
	return o.status
}

// Vehicle returns the immutable vehicle snapshot taken at request time.
func (o *Order) Vehicle() VehicleSnapshot {
	return o.vehicle
}

// ShippingMethod returns the requested ocean freight method.
func (o *Order) ShippingMethod() pricing.ShippingMethod {
	return o.shippingMethod
}

// DestinationState returns the Nigerian destination state.
func (o *Order) DestinationState() string {
	return o.destinationState
}

// QuotedPriceUsd returns the vehicle price the quote was based on.
func (o *Order) QuotedPriceUsd() int64 {
	return o.quotedPriceUsd
}

// CostBreakdown returns the attached landed-cost breakdown, or nil if no
// quote has been attached yet.
func (o *Order) CostBreakdown() *pricing.CostBreakdown {
	if o.breakdown == nil {
		return nil
	}
	copied := *o.breakdown
	return &copied
}

// DepositAmountUsd returns the required deposit from the attached quote.
func (o *Order) DepositAmountUsd() int64 {
	return o.depositAmountUsd
}

// EstimatedDeliveryDays returns the delivery estimate from the attached quote.
func (o *Order) EstimatedDeliveryDays() int {
	return o.estimatedDeliveryDays
}

// TotalCostUsd returns the landed-cost total, or 0 before a quote is attached.
func (o *Order) TotalCostUsd() int64 {
	if o.breakdown == nil {
		return 0
	}
	return o.breakdown.TotalUsd
}

// CancelReason returns the cancellation reason, or "" if not canceled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// CreatedAt returns when the import request was submitted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StatusChangedAt returns when the status last changed.
func (o *Order) StatusChangedAt() time.Time {
	return o.statusChangedAt
}

// AttachQuote stores the pricing engine's output on the order. The quote can
// only change while the buyer has not yet committed to it, i.e. in
// PENDING_QUOTE or QUOTE_SENT.
func (o *Order) AttachQuote(quote pricing.Quote) error {
	if o.status != PendingQuote && o.status != QuoteSent {
		return fmt.Errorf("%w: status is %s", ErrQuoteNotAttachable, o.status)
	}
	if err := quote.Breakdown.Validate(); err != nil {
		return err
	}
	if quote.DepositAmountUsd <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("deposit amount",
			fmt.Errorf("%d is not greater than 0", quote.DepositAmountUsd))
	}

	breakdown := quote.Breakdown
	o.breakdown = &breakdown
	o.quotedPriceUsd = breakdown.VehiclePriceUsd
	o.depositAmountUsd = quote.DepositAmountUsd
	o.estimatedDeliveryDays = quote.EstimatedDeliveryDays
	return nil
}

// Apply performs a workflow transition on the order. It validates the
// state/action pair against the registry and, for cancel, the presence of a
// trimmed non-empty reason. Role checks belong to the workflow engine, not
// here.
//
// On success the status changes and statusChangedAt is stamped. On failure
// the order is left untouched. Transitions are not idempotent: applying an
// action to an order already in the target state fails with
// ErrInvalidTransition.
func (o *Order) Apply(action Action, reason string) error {
	switch action {
	case ActionCancel:
		return o.applyCancel(reason)
	case ActionRefund:
		return o.applyRefund()
	default:
		return o.applyForward(action)
	}
}

func (o *Order) applyForward(action Action) error {
	transition, ok := ForwardTransitionFor(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if o.status != transition.From {
		return &InvalidTransitionError{From: o.status, Action: action}
	}

	o.changeStatus(transition.To)
	return nil
}

func (o *Order) applyCancel(reason string) error {
	if o.status.IsTerminal() {
		return &InvalidTransitionError{From: o.status, Action: ActionCancel}
	}

	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	o.changeStatus(Canceled)
	o.cancelReason = trimmed
	return nil
}

func (o *Order) applyRefund() error {
	if o.status.IsTerminal() {
		return &InvalidTransitionError{From: o.status, Action: ActionRefund}
	}
	if o.TotalPaidUsd() == 0 {
		return ErrNoCompletedPayment
	}

	o.changeStatus(Refunded)
	return nil
}

func (o *Order) changeStatus(to Status) {
	o.status = to
	o.statusChangedAt = time.Now().UTC()
}

// Payments returns a copy of the order's payment attempts, oldest first.
func (o *Order) Payments() []Payment {
	payments := make([]Payment, len(o.payments))
	copy(payments, o.payments)
	return payments
}

// PendingPayments returns the payment attempts still awaiting settlement.
func (o *Order) PendingPayments() []Payment {
	var pending []Payment
	for _, p := range o.payments {
		if p.Status() == PaymentStatusPending {
			pending = append(pending, p)
		}
	}
	return pending
}

// AddPayment appends a payment attempt to the order. The payment must belong
// to this order and its transaction reference must be new.
func (o *Order) AddPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	if !payment.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause("payment order ID",
			fmt.Errorf("payment belongs to order %s, not %s", payment.OrderID(), o.id))
	}
	for _, existing := range o.payments {
		if existing.TransactionRef() == payment.TransactionRef() {
			return fmt.Errorf("%w: %s", ErrDuplicateTransactionRef, payment.TransactionRef())
		}
	}

	o.payments = append(o.payments, payment)
	return nil
}

// SettlePayment marks the pending payment with the given provider reference
// as completed and returns the settled record.
func (o *Order) SettlePayment(transactionRef string) (Payment, error) {
	for i := range o.payments {
		if o.payments[i].TransactionRef() == transactionRef {
			if err := o.payments[i].complete(); err != nil {
				return Payment{}, err
			}
			return o.payments[i], nil
		}
	}
	return Payment{}, errs.NewObjectNotFoundError("transactionRef", transactionRef)
}

// FailPayment marks the pending payment with the given provider reference as
// failed and returns the record.
func (o *Order) FailPayment(transactionRef string) (Payment, error) {
	for i := range o.payments {
		if o.payments[i].TransactionRef() == transactionRef {
			if err := o.payments[i].fail(); err != nil {
				return Payment{}, err
			}
			return o.payments[i], nil
		}
	}
	return Payment{}, errs.NewObjectNotFoundError("transactionRef", transactionRef)
}

// TotalPaidUsd returns the sum of all completed payment amounts.
func (o *Order) TotalPaidUsd() int64 {
	var total int64
	for _, p := range o.payments {
		if p.IsCompleted() {
			total += p.AmountUsd()
		}
	}
	return total
}

// DepositSettled reports whether the deposit obligation is met: a completed
// DEPOSIT payment, or a completed FULL_PAYMENT (which subsumes the deposit).
func (o *Order) DepositSettled() bool {
	for _, p := range o.payments {
		if !p.IsCompleted() {
			continue
		}
		if p.Type() == PaymentTypeDeposit || p.Type() == PaymentTypeFullPayment {
			return true
		}
	}
	return false
}
