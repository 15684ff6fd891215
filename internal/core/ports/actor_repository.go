package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/actor"
)

// ActorRepository is the staff directory.
type ActorRepository interface {
	// Add stores a new actor. A role+code pair already taken is reported as
	// ErrDuplicateKey.
	Add(ctx context.Context, aggregate *actor.Actor) error

	Update(ctx context.Context, aggregate *actor.Actor) error

	// GetByCode returns the actor holding code within role, active or not.
	GetByCode(ctx context.Context, role actor.Role, code actor.AccessCode) (*actor.Actor, error)

	// IsActive is the cheap check run on every privileged call.
	IsActive(ctx context.Context, role actor.Role, code actor.AccessCode) (bool, error)
}
