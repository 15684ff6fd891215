package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

// LoginCommand exchanges an access code for a session binding.
type LoginCommand struct { //nolint:recvcheck //using for validation
	role actor.Role
	code actor.AccessCode

	guard guard.ConstructorGuard
}

func NewLoginCommand(role actor.Role, rawCode string) (LoginCommand, error) {
	if err := role.Validate(); err != nil {
		return LoginCommand{}, err
	}
	code, err := actor.NewAccessCode(rawCode)
	if err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{
		role:  role,
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Role() actor.Role {
	return c.role
}

func (c LoginCommand) Code() actor.AccessCode {
	return c.code
}
