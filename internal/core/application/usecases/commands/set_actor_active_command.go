package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/pkg/guard"
)

var ErrSetActorActiveCommandIsNotConstructed = errors.New(
	"SetActorActiveCommand must be created via NewSetActorActiveCommand constructor",
)

// SetActorActiveCommand enables or disables an actor. Disabling revokes every
// live session of the actor on its next use.
type SetActorActiveCommand struct { //nolint:recvcheck //using for validation
	role   actor.Role
	code   actor.AccessCode
	active bool

	guard guard.ConstructorGuard
}

func NewSetActorActiveCommand(role actor.Role, rawCode string, active bool) (SetActorActiveCommand, error) {
	code, err := actor.NewAccessCode(rawCode)
	if err = errors.Join(role.Validate(), err); err != nil {
		return SetActorActiveCommand{}, err
	}

	return SetActorActiveCommand{
		role:   role,
		code:   code,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SetActorActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetActorActiveCommandIsNotConstructed)
}

func (c SetActorActiveCommand) Role() actor.Role {
	return c.role
}

func (c SetActorActiveCommand) Code() actor.AccessCode {
	return c.code
}

func (c SetActorActiveCommand) Active() bool {
	return c.active
}
