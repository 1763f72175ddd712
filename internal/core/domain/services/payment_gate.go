package services

import (
	"autoimport/internal/core/domain/model/order"
)

// PaymentOptions describes what the buyer is currently allowed to pay and how
// much remains. Amounts are whole USD.
type PaymentOptions struct {
	CanPayDeposit bool `json:"canPayDeposit"`
	CanPayFull    bool `json:"canPayFull"`
	CanPayBalance bool `json:"canPayBalance"`

	DepositAmountUsd    int64 `json:"depositAmountUsd"`
	RemainingBalanceUsd int64 `json:"remainingBalanceUsd"`
}

// PaymentGate is the domain service that derives the buyer's payment options
// from the order's state. It never looks at the payment provider: options
// follow purely from the workflow status, the quote and the settled payments.
//
// Business rules:
//   - Before the quote is attached no options exist.
//   - While the deposit is unsettled the buyer chooses deposit or full
//     payment; the two are mutually exclusive with the balance option.
//   - Once the deposit settles only the remaining balance can be paid.
//   - Nothing is payable on terminal orders or once the total is covered.
type PaymentGate struct{}

// NewPaymentGate creates a new PaymentGate instance.
func NewPaymentGate() PaymentGate {
	return PaymentGate{}
}

// Derive computes the payment options for an order.
func (g PaymentGate) Derive(o *order.Order) (PaymentOptions, error) {
	if err := o.Validate(); err != nil {
		return PaymentOptions{}, err
	}

	return g.DeriveFromFacts(
		o.Status(), o.TotalCostUsd(), o.DepositAmountUsd(), o.TotalPaidUsd(), o.DepositSettled()), nil
}

// DeriveFromFacts computes the payment options from the order's observable
// state. Read models use this to attach options to a view without restoring
// the aggregate.
func (g PaymentGate) DeriveFromFacts(
	status order.Status,
	totalCostUsd int64,
	depositAmountUsd int64,
	totalPaidUsd int64,
	depositSettled bool,
) PaymentOptions {
	options := PaymentOptions{
		DepositAmountUsd: depositAmountUsd,
	}

	if totalCostUsd == 0 || status.IsTerminal() {
		return options
	}

	remaining := totalCostUsd - totalPaidUsd
	if remaining < 0 {
		remaining = 0
	}
	options.RemainingBalanceUsd = remaining
	if remaining == 0 {
		return options
	}

	// Payments open up once the buyer accepts the quote.
	if status == order.PendingQuote || status == order.QuoteSent {
		return options
	}

	if depositSettled {
		options.CanPayBalance = true
	} else {
		options.CanPayDeposit = depositAmountUsd > 0
		options.CanPayFull = true
	}
	return options
}

// AllowedAmount returns the expected amount for a payment type under the
// current options. The second result is false when the type is not currently
// payable.
func (g PaymentGate) AllowedAmount(o *order.Order, paymentType order.PaymentType) (int64, bool) {
	options, err := g.Derive(o)
	if err != nil {
		return 0, false
	}

	switch paymentType {
	case order.PaymentTypeDeposit:
		return options.DepositAmountUsd, options.CanPayDeposit
	case order.PaymentTypeFullPayment:
		return options.RemainingBalanceUsd, options.CanPayFull
	case order.PaymentTypeBalance:
		return options.RemainingBalanceUsd, options.CanPayBalance
	default:
		return 0, false
	}
}
