package order

import (
	"errors"
	"fmt"
)

// Action identifies a workflow transition request. The string value is the
// wire form carried by transition requests.
type Action string

// Forward-progression actions. Each is allowed only from its specific
// predecessor state; attempting it from any other state is an invalid
// transition, including re-applying it to an order already in the target
// state. Transitions are deliberately not idempotent: "already verified"
// is an error, not a no-op.
const (
	ActionSendQuote             Action = "sendQuote"
	ActionAcceptQuote           Action = "acceptQuote"
	ActionMarkDepositPaid       Action = "markDepositPaid"
	ActionVerify                Action = "verify"
	ActionCompleteInspection    Action = "completeInspection"
	ActionSubmitForApproval     Action = "submitForApproval"
	ActionApprove               Action = "approve"
	ActionBeginPurchase         Action = "beginPurchase"
	ActionMarkPurchased         Action = "markPurchased"
	ActionBeginExport           Action = "beginExport"
	ActionShip                  Action = "ship"
	ActionMarkInTransit         Action = "markInTransit"
	ActionMarkArrived           Action = "markArrived"
	ActionBeginCustomsClearance Action = "beginCustomsClearance"
	ActionClearCustoms          Action = "clearCustoms"
	ActionScheduleDelivery      Action = "scheduleDelivery"
	ActionMarkDelivered         Action = "markDelivered"
)

// Side-branch actions.
const (
	// ActionCancel terminates the order from any non-terminal state.
	// Requires a non-empty reason.
	ActionCancel Action = "cancel"

	// ActionRefund returns completed payments to the buyer. Administrative
	// only, and only meaningful once at least one payment has completed.
	ActionRefund Action = "refund"
)

var (
	// ErrInvalidTransition indicates an illegal state/action pair, including
	// applying an action twice.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownAction indicates an action name outside the registry.
	ErrUnknownAction = errors.New("unknown action")

	// ErrActorNotAllowed indicates the actor's role does not satisfy the
	// transition's required role.
	ErrActorNotAllowed = errors.New("actor is not allowed to perform this action")

	// ErrNoCompletedPayment indicates a refund was requested for an order
	// that has no completed payment to return.
	ErrNoCompletedPayment = errors.New("order has no completed payment")
)

// InvalidTransitionError reports an action applied from a state that does
// not allow it.
type InvalidTransitionError struct {
	From   Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition is one registry entry: the single predecessor state the action
// is allowed from, the resulting state, and the role required to perform it.
type Transition struct {
	From Status
	To   Status
	Role Role
}

// getForwardTransitions returns the registry of forward-progression
// transitions. Cancel and refund are not listed here because their
// allowed-from set is "any non-terminal state" rather than one predecessor;
// RequiredRoleFor covers their role requirements.
func getForwardTransitions() map[Action]Transition {
	return map[Action]Transition{
		ActionSendQuote:             {From: PendingQuote, To: QuoteSent, Role: RoleAdmin},
		ActionAcceptQuote:           {From: QuoteSent, To: DepositPending, Role: RoleBuyer},
		ActionMarkDepositPaid:       {From: DepositPending, To: DepositPaid, Role: RoleAdmin},
		ActionVerify:                {From: DepositPaid, To: InspectionPending, Role: RoleAdmin},
		ActionCompleteInspection:    {From: InspectionPending, To: InspectionComplete, Role: RoleAdmin},
		ActionSubmitForApproval:     {From: InspectionComplete, To: AwaitingApproval, Role: RoleAdmin},
		ActionApprove:               {From: AwaitingApproval, To: Approved, Role: RoleBuyer},
		ActionBeginPurchase:         {From: Approved, To: PurchaseInProgress, Role: RoleAdmin},
		ActionMarkPurchased:         {From: PurchaseInProgress, To: Purchased, Role: RoleAdmin},
		ActionBeginExport:           {From: Purchased, To: ExportPending, Role: RoleAdmin},
		ActionShip:                  {From: ExportPending, To: Shipped, Role: RoleAdmin},
		ActionMarkInTransit:         {From: Shipped, To: InTransit, Role: RoleAdmin},
		ActionMarkArrived:           {From: InTransit, To: ArrivedPort, Role: RoleAdmin},
		ActionBeginCustomsClearance: {From: ArrivedPort, To: CustomsClearance, Role: RoleAdmin},
		ActionClearCustoms:          {From: CustomsClearance, To: Cleared, Role: RoleAdmin},
		ActionScheduleDelivery:      {From: Cleared, To: DeliveryScheduled, Role: RoleAdmin},
		ActionMarkDelivered:         {From: DeliveryScheduled, To: Delivered, Role: RoleAdmin},
	}
}

// ActionFromString parses a wire action name.
func ActionFromString(s string) (Action, error) {
	action := Action(s)
	if _, ok := getForwardTransitions()[action]; ok {
		return action, nil
	}
	if action == ActionCancel || action == ActionRefund {
		return action, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ForwardTransitionFor returns the registry entry for a forward action.
// The second result is false for cancel, refund, and unknown actions.
func ForwardTransitionFor(action Action) (Transition, bool) {
	t, ok := getForwardTransitions()[action]
	return t, ok
}

// ForwardActionFrom returns the forward action leaving the given status.
// The second result is false for terminal and invalid statuses: every
// non-terminal status has exactly one forward action, terminals have none.
func ForwardActionFrom(status Status) (Action, bool) {
	for action, t := range getForwardTransitions() {
		if t.From == status {
			return action, true
		}
	}
	return "", false
}

// RequiredRoleFor returns the role required to perform an action.
// Cancel is buyer-performable (the engine additionally restricts buyer
// cancellation to the order's owner before the deposit settles); refund is
// administrative only.
func RequiredRoleFor(action Action) (Role, error) {
	if t, ok := getForwardTransitions()[action]; ok {
		return t.Role, nil
	}
	switch action {
	case ActionCancel:
		return RoleBuyer, nil
	case ActionRefund:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
