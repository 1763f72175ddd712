package order

import (
	"errors"
	"fmt"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/pkg/errs"
	"autoimport/internal/pkg/guard"
)

// PaymentType classifies what a payment is for.
type PaymentType string

const (
	// PaymentTypeDeposit is the 30% deposit due after quote acceptance.
	PaymentTypeDeposit PaymentType = "DEPOSIT"

	// PaymentTypeFullPayment settles the entire landed cost up front.
	// A completed full payment subsumes the deposit.
	PaymentTypeFullPayment PaymentType = "FULL_PAYMENT"

	// PaymentTypeBalance settles the remainder after a deposit.
	PaymentTypeBalance PaymentType = "BALANCE"
)

// Validate checks that the payment type is one of the known values.
func (t PaymentType) Validate() error {
	switch t {
	case PaymentTypeDeposit, PaymentTypeFullPayment, PaymentTypeBalance:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment type",
			fmt.Errorf("%q is not a valid payment type", string(t)))
	}
}

// PaymentTypeFromString parses a wire payment type name.
func PaymentTypeFromString(s string) (PaymentType, error) {
	t := PaymentType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// PaymentStatus is the settlement state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was not created
	// through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrPaymentAlreadySettled indicates an attempt to settle or fail a
	// payment that is no longer pending. Payments are append-only records;
	// a settled payment never changes again.
	ErrPaymentAlreadySettled = errors.New("payment is already settled")
)

// Payment is one payment attempt against an order. Payments are append-only:
// a new attempt is a new Payment, and once a payment leaves PENDING its
// record is final.
type Payment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	amountUsd      int64
	paymentType    PaymentType
	status         PaymentStatus
	transactionRef string

	guard guard.ConstructorGuard
}

// NewPayment creates a pending payment attempt. The transaction reference is
// the provider's identifier and must be non-empty; the amount must be
// positive.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amountUsd int64,
	paymentType PaymentType,
	transactionRef string,
) (Payment, error) {
	if err := id.Validate(); err != nil {
		return Payment{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Payment{}, err
	}
	if amountUsd <= 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("payment amount",
			fmt.Errorf("%d is not greater than 0", amountUsd))
	}
	if err := paymentType.Validate(); err != nil {
		return Payment{}, err
	}
	if transactionRef == "" {
		return Payment{}, errs.NewValueIsRequiredError("transaction reference")
	}

	return Payment{
		id:             id,
		orderID:        orderID,
		amountUsd:      amountUsd,
		paymentType:    paymentType,
		status:         PaymentStatusPending,
		transactionRef: transactionRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestorePayment reconstructs a payment from persistence, including its
// settlement status.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amountUsd int64,
	paymentType PaymentType,
	status PaymentStatus,
	transactionRef string,
) (Payment, error) {
	payment, err := NewPayment(id, orderID, amountUsd, paymentType, transactionRef)
	if err != nil {
		return Payment{}, err
	}

	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		payment.status = status
	default:
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", string(status)))
	}

	return payment, nil
}

// Validate ensures the payment was created through a constructor.
func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order this payment belongs to.
func (p Payment) OrderID() kernel.UUID {
	return p.orderID
}

// AmountUsd returns the payment amount in whole USD.
func (p Payment) AmountUsd() int64 {
	return p.amountUsd
}

// Type returns what the payment is for.
func (p Payment) Type() PaymentType {
	return p.paymentType
}

// Status returns the settlement state.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// TransactionRef returns the payment provider's reference.
func (p Payment) TransactionRef() string {
	return p.transactionRef
}

// IsCompleted reports whether the payment settled successfully.
func (p Payment) IsCompleted() bool {
	return p.status == PaymentStatusCompleted
}

// complete marks a pending payment as settled.
func (p *Payment) complete() error {
	if p.status != PaymentStatusPending {
		return fmt.Errorf("%w: %s is %s", ErrPaymentAlreadySettled, p.transactionRef, p.status)
	}
	p.status = PaymentStatusCompleted
	return nil
}

// fail marks a pending payment as failed.
func (p *Payment) fail() error {
	if p.status != PaymentStatusPending {
		return fmt.Errorf("%w: %s is %s", ErrPaymentAlreadySettled, p.transactionRef, p.status)
	}
	p.status = PaymentStatusFailed
	return nil
}
