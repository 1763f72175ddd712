package order

import (
	"errors"
	"fmt"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/pkg/errs"
	"autoimport/internal/pkg/guard"
)

// Role classifies who is attempting a workflow action.
type Role string

const (
	// RoleBuyer is the customer who submitted the import request.
	// Buyers may only act on their own orders.
	RoleBuyer Role = "buyer"

	// RoleAdmin is brokerage staff. Admins satisfy every required role.
	RoleAdmin Role = "admin"
)

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	if r != RoleBuyer && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor identifies who is requesting a workflow transition: a user identity
// plus their role. Authentication happens outside the core; the actor arrives
// here as an already-resolved value.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates an actor with a valid identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's user identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor is brokerage staff.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
