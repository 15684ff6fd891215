package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/pkg/guard"
)

var ErrAddActorCommandIsNotConstructed = errors.New("AddActorCommand must be created via NewAddActorCommand constructor")

// AddActorCommand registers a chef or courier. Only the administrator CLI issues it.
type AddActorCommand struct { //nolint:recvcheck //using for validation
	role  actor.Role
	code  actor.AccessCode
	name  string
	phone string

	guard guard.ConstructorGuard
}

func NewAddActorCommand(role actor.Role, rawCode, name, phone string) (AddActorCommand, error) {
	code, err := actor.NewAccessCode(rawCode)
	if err = errors.Join(role.Validate(), err); err != nil {
		return AddActorCommand{}, err
	}

	return AddActorCommand{
		role:  role,
		code:  code,
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AddActorCommand) Validate() error {
	return c.guard.Validate(ErrAddActorCommandIsNotConstructed)
}

func (c AddActorCommand) Role() actor.Role {
	return c.role
}

func (c AddActorCommand) Code() actor.AccessCode {
	return c.code
}

func (c AddActorCommand) Name() string {
	return c.name
}

func (c AddActorCommand) Phone() string {
	return c.phone
}
