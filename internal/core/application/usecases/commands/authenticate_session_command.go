package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrAuthenticateSessionCommandIsNotConstructed = errors.New(
	"AuthenticateSessionCommand must be created via NewAuthenticateSessionCommand constructor",
)

// AuthenticateSessionCommand resolves a session id to the actor behind it.
// It is a command because a binding found stale is destroyed on the spot.
type AuthenticateSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAuthenticateSessionCommand parses the raw cookie value. Anything that is
// not a session id is reported as ErrUnauthorized.
func NewAuthenticateSessionCommand(rawSessionID string) (AuthenticateSessionCommand, error) {
	id, err := kernel.UUIDFromString(rawSessionID)
	if err != nil {
		return AuthenticateSessionCommand{}, ErrUnauthorized
	}
	return AuthenticateSessionCommand{
		sessionID: id,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AuthenticateSessionCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateSessionCommandIsNotConstructed)
}

func (c AuthenticateSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
