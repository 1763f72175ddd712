// Package http is the inbound REST adapter. It translates requests into
// commands and queries, and domain errors into status codes. Authentication
// is out of scope: the acting identity arrives in the X-User-Id and
// X-User-Role headers, placed there by the edge proxy.
package http

import (
	"errors"
	"net/http"

	"autoimport/internal/core/application/usecases/commands"
	"autoimport/internal/core/application/usecases/queries"
	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createImportRequestHandler commands.CreateImportRequestCommandHandler
	transitionOrderHandler     commands.TransitionOrderCommandHandler
	initiatePaymentHandler     commands.InitiatePaymentCommandHandler
	confirmPaymentHandler      commands.ConfirmPaymentCommandHandler

	// Query handlers
	getOrderHandler  queries.GetOrderQueryHandler
	getOrdersHandler queries.GetOrdersQueryHandler

	// Standalone quoting
	calculator    pricing.LandedCostCalculator
	pricingConfig pricing.Config
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createImportRequestHandler commands.CreateImportRequestCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	initiatePaymentHandler commands.InitiatePaymentCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	pricingConfig pricing.Config,
) *Server {
	return &Server{
		createImportRequestHandler: createImportRequestHandler,
		transitionOrderHandler:     transitionOrderHandler,
		initiatePaymentHandler:     initiatePaymentHandler,
		confirmPaymentHandler:      confirmPaymentHandler,
		getOrderHandler:            getOrderHandler,
		getOrdersHandler:           getOrdersHandler,
		calculator:                 pricing.NewLandedCostCalculator(),
		pricingConfig:              pricingConfig,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/quotes", s.CalculateQuote)
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/transitions", s.TransitionOrder)
	v1.POST("/orders/:id/payments", s.InitiatePayment)
	v1.POST("/payments/confirm", s.ConfirmPayment)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CalculateQuote handles POST /api/v1/quotes - prices an import without
// creating an order.
func (s *Server) CalculateQuote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	quote, err := s.calculator.Calculate(
		req.VehiclePriceUsd,
		pricing.VehicleType(req.VehicleType),
		pricing.ShippingMethod(req.ShippingMethod),
		req.DestinationState,
		s.pricingConfig,
	)
	if err != nil {
		return badRequest(ctx, "Invalid quote request: "+err.Error())
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		Breakdown:             quote.Breakdown,
		DepositAmountUsd:      quote.DepositAmountUsd,
		EstimatedDeliveryDays: quote.EstimatedDeliveryDays,
	})
}

// CreateOrder handles POST /api/v1/orders - submits a new import request for
// the acting buyer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicle, err := order.NewVehicleSnapshot(
		req.ListingID, req.Make, req.Model, req.Year,
		pricing.VehicleType(req.VehicleType), req.PriceUsd)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle data: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateImportRequestCommand(
		orderID, actor.ID(), vehicle,
		pricing.ShippingMethod(req.ShippingMethod), req.DestinationState)
	if err != nil {
		return badRequest(ctx, "Invalid import request: "+err.Error())
	}

	if err = s.createImportRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists order summaries. Admins see
// everything and may filter by status or buyer; buyers always see only their
// own orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query := queries.NewGetOrdersQuery()

	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, statusErr := order.StatusFromString(statusParam)
		if statusErr != nil {
			return badRequest(ctx, "Invalid status filter: "+statusErr.Error())
		}
		if query, err = query.WithStatus(status); err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	buyerFilter := kernel.UUID{}
	if buyerParam := ctx.QueryParam("buyer"); buyerParam != "" {
		if buyerFilter, err = kernel.UUIDFromString(buyerParam); err != nil {
			return badRequest(ctx, "Invalid buyer filter: "+err.Error())
		}
	}
	if !actor.IsAdmin() {
		buyerFilter = actor.ID()
	}
	if buyerFilter.Validate() == nil {
		if query, err = query.WithBuyer(buyerFilter); err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	summaries, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order in full.
// Buyers may only view their own orders.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := orderQueryFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if !actor.IsAdmin() && !actor.ID().IsEqual(view.BuyerID) {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Order belongs to another buyer",
		})
	}

	return ctx.JSON(http.StatusOK, view)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions - applies one
// workflow action and reports the resulting status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, action, actor, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{Status: view.Status})
}

// InitiatePayment handles POST /api/v1/orders/:id/payments - opens a payment
// attempt and returns the provider's authorization handle.
func (s *Server) InitiatePayment(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req InitiatePaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	paymentType, err := order.PaymentTypeFromString(req.PaymentType)
	if err != nil {
		return badRequest(ctx, "Invalid payment type: "+err.Error())
	}

	cmd, err := commands.NewInitiatePaymentCommand(kernel.NewUUID(), orderID, actor, paymentType)
	if err != nil {
		return badRequest(ctx, "Invalid payment request: "+err.Error())
	}

	result, err := s.initiatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, InitiatePaymentResponse{
		TransactionRef:   result.TransactionRef,
		AuthorizationURL: result.AuthorizationURL,
		AmountUsd:        result.AmountUsd,
	})
}

// ConfirmPayment handles POST /api/v1/payments/confirm - verifies a
// transaction with the provider and settles or fails the payment record.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var req ConfirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.TransactionRef)
	if err != nil {
		return badRequest(ctx, "Invalid confirmation request: "+err.Error())
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actorFromHeaders builds the acting identity from the proxy-provided headers.
func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return order.Actor{}, errors.New("missing or invalid " + headerUserID + " header")
	}

	actor, err := order.NewActor(id, order.Role(ctx.Request().Header.Get(headerUserRole)))
	if err != nil {
		return order.Actor{}, errors.New("missing or invalid " + headerUserRole + " header")
	}

	return actor, nil
}

func orderQueryFromPath(ctx echo.Context) (queries.GetOrderQuery, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return queries.GetOrderQuery{}, errors.New("invalid order ID: " + err.Error())
	}
	return queries.NewGetOrderQuery(orderID)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a use-case error to the HTTP status the API contract
// promises: 400 for invalid input, 403 for role violations, 404 for unknown
// objects, 409 for workflow and payment conflicts, 500 otherwise.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrUnknownAction):
		code = http.StatusBadRequest
	case errors.Is(err, order.ErrActorNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNoCompletedPayment),
		errors.Is(err, order.ErrQuoteNotAttachable),
		errors.Is(err, order.ErrDuplicateTransactionRef),
		errors.Is(err, order.ErrPaymentAlreadySettled),
		errors.Is(err, commands.ErrPaymentNotAvailable):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
