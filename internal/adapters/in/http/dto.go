package http

import (
	"autoimport/internal/core/domain/model/pricing"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QuoteRequest asks for a standalone landed-cost quote, without creating an
// order.
type QuoteRequest struct {
	VehiclePriceUsd  int64  `json:"vehiclePriceUsd"`
	VehicleType      string `json:"vehicleType"`
	ShippingMethod   string `json:"shippingMethod"`
	DestinationState string `json:"destinationState"`
}

// QuoteResponse is the calculated quote.
type QuoteResponse struct {
	Breakdown             pricing.CostBreakdown `json:"breakdown"`
	DepositAmountUsd      int64                 `json:"depositAmountUsd"`
	EstimatedDeliveryDays int                   `json:"estimatedDeliveryDays"`
}

// CreateOrderRequest submits a new import request. The vehicle fields are a
// snapshot of the listing at submission time.
type CreateOrderRequest struct {
	ListingID        string `json:"listingId"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	VehicleType      string `json:"vehicleType"`
	PriceUsd         int64  `json:"priceUsd"`
	ShippingMethod   string `json:"shippingMethod"`
	DestinationState string `json:"destinationState"`
}

// CreateOrderResponse returns the identifier of the newly created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// TransitionRequest applies one workflow action to an order. The reason is
// required for cancellation.
type TransitionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// TransitionResponse reports the status the order landed in.
type TransitionResponse struct {
	Status string `json:"status"`
}

// InitiatePaymentRequest opens a payment attempt. The amount is derived
// server-side from the order's payment options.
type InitiatePaymentRequest struct {
	PaymentType string `json:"paymentType"`
}

// InitiatePaymentResponse carries the provider handle for the new attempt.
type InitiatePaymentResponse struct {
	TransactionRef   string `json:"transactionRef"`
	AuthorizationURL string `json:"authorizationUrl"`
	AmountUsd        int64  `json:"amountUsd"`
}

// ConfirmPaymentRequest asks the brokerage to verify a transaction with the
// payment provider.
type ConfirmPaymentRequest struct {
	TransactionRef string `json:"transactionRef"`
}
