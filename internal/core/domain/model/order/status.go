package order

import (
	"fmt"

	"autoimport/internal/pkg/errs"
)

// Status represents the lifecycle state of an import order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct brokerage workflow.
//
// State transitions form a linear happy path from PENDING_QUOTE to DELIVERED,
// with two terminal side branches:
//
//	PENDING_QUOTE -> QUOTE_SENT -> DEPOSIT_PENDING -> DEPOSIT_PAID
//	  -> INSPECTION_PENDING -> INSPECTION_COMPLETE -> AWAITING_APPROVAL
//	  -> APPROVED -> PURCHASE_IN_PROGRESS -> PURCHASED -> EXPORT_PENDING
//	  -> SHIPPED -> IN_TRANSIT -> ARRIVED_PORT -> CUSTOMS_CLEARANCE
//	  -> CLEARED -> DELIVERY_SCHEDULED -> DELIVERED
//
//	any non-terminal state -> CANCELED  (requires a reason)
//	any non-terminal state with a completed payment -> REFUNDED  (administrative)
//
// Status has exactly one canonical string form (the UPPER_SNAKE identity used
// for persistence and the API) and a separate human display label, so the
// same semantic state is never keyed by two different spellings.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingQuote is the initial status when an import request is submitted.
	// The order waits for an admin to review and send the landed-cost quote.
	PendingQuote

	// QuoteSent means the landed-cost quote has been sent to the buyer.
	QuoteSent

	// DepositPending means the buyer accepted the quote and the deposit
	// (or full payment) is now due.
	DepositPending

	// DepositPaid means the deposit has been confirmed.
	DepositPaid

	// InspectionPending means the admin verified the vehicle is still
	// available and a condition inspection is underway in the US.
	InspectionPending

	// InspectionComplete means the inspection report is ready.
	InspectionComplete

	// AwaitingApproval means the inspection report has been shared and the
	// buyer must approve the purchase.
	AwaitingApproval

	// Approved means the buyer approved the purchase.
	Approved

	// PurchaseInProgress means the brokerage is buying the vehicle in the US.
	PurchaseInProgress

	// Purchased means the vehicle has been bought.
	Purchased

	// ExportPending means the vehicle awaits export paperwork and a vessel.
	ExportPending

	// Shipped means the vehicle has been loaded and the vessel has departed.
	Shipped

	// InTransit means the vessel is en route to Nigeria.
	InTransit

	// ArrivedPort means the vehicle has arrived at the Nigerian port.
	ArrivedPort

	// CustomsClearance means customs processing is in progress.
	CustomsClearance

	// Cleared means customs released the vehicle.
	Cleared

	// DeliveryScheduled means last-mile delivery has been booked.
	DeliveryScheduled

	// Delivered means the buyer has received the vehicle.
	// This is a final state with no further transitions allowed.
	Delivered

	// Canceled means the order was terminated before delivery.
	// Always carries a cancellation reason. Final state.
	Canceled

	// Refunded means completed payments were returned to the buyer.
	// Administrative action. Final state.
	Refunded
)

// getStatusStrings returns the canonical string identity for every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		PendingQuote:       "PENDING_QUOTE",
		QuoteSent:          "QUOTE_SENT",
		DepositPending:     "DEPOSIT_PENDING",
		DepositPaid:        "DEPOSIT_PAID",
		InspectionPending:  "INSPECTION_PENDING",
		InspectionComplete: "INSPECTION_COMPLETE",
		AwaitingApproval:   "AWAITING_APPROVAL",
		Approved:           "APPROVED",
		PurchaseInProgress: "PURCHASE_IN_PROGRESS",
		Purchased:          "PURCHASED",
		ExportPending:      "EXPORT_PENDING",
		Shipped:            "SHIPPED",
		InTransit:          "IN_TRANSIT",
		ArrivedPort:        "ARRIVED_PORT",
		CustomsClearance:   "CUSTOMS_CLEARANCE",
		Cleared:            "CLEARED",
		DeliveryScheduled:  "DELIVERY_SCHEDULED",
		Delivered:          "DELIVERED",
		Canceled:           "CANCELED",
		Refunded:           "REFUNDED",
	}
}

// getDisplayLabels returns the human-readable label for every valid status.
// Labels are presentation data only; state identity always uses String().
func getDisplayLabels() map[Status]string {
	return map[Status]string{
		PendingQuote:       "Pending Quote",
		QuoteSent:          "Quote Sent",
		DepositPending:     "Deposit Pending",
		DepositPaid:        "Deposit Paid",
		InspectionPending:  "Inspection Pending",
		InspectionComplete: "Inspection Complete",
		AwaitingApproval:   "Awaiting Your Approval",
		Approved:           "Approved",
		PurchaseInProgress: "Purchase In Progress",
		Purchased:          "Purchased",
		ExportPending:      "Export Pending",
		Shipped:            "Shipped",
		InTransit:          "In Transit",
		ArrivedPort:        "Arrived At Port",
		CustomsClearance:   "Customs Clearance",
		Cleared:            "Cleared Customs",
		DeliveryScheduled:  "Delivery Scheduled",
		Delivered:          "Delivered",
		Canceled:           "Canceled",
		Refunded:           "Refunded",
	}
}

// AllStatuses returns every valid status in workflow order.
func AllStatuses() []Status {
	return []Status{
		PendingQuote, QuoteSent, DepositPending, DepositPaid,
		InspectionPending, InspectionComplete, AwaitingApproval, Approved,
		PurchaseInProgress, Purchased, ExportPending, Shipped, InTransit,
		ArrivedPort, CustomsClearance, Cleared, DeliveryScheduled,
		Delivered, Canceled, Refunded,
	}
}

// StatusFromString parses a canonical status string (e.g. "DEPOSIT_PAID").
// Returns an error for unrecognized or non-canonical spellings.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the canonical identity of the status (e.g. "DEPOSIT_PAID").
// This is the single representation used for persistence and the API.
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// DisplayLabel returns the human-readable label for the status
// (e.g. "Deposit Paid"). Returns "Unknown" for invalid values.
func (s Status) DisplayLabel() string {
	if label, ok := getDisplayLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether the status is final.
// Terminal orders accept no further transitions of any kind.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled || s == Refunded
}
