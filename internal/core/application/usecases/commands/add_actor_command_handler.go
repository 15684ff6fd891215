package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
)

// ErrActorCodeIsTaken is returned when another actor of the same role holds the code.
var ErrActorCodeIsTaken = errors.New("access code is already taken")

type AddActorCommandHandler struct {
	uowFactory ActorUoWFactory
	now        Clock
}

func NewAddActorCommandHandler(uowFactory ActorUoWFactory, now Clock) AddActorCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AddActorCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle creates an active actor and returns its id.
func (h AddActorCommandHandler) Handle(ctx context.Context, cmd AddActorCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	a, err := actor.NewActor(kernel.NewUUID(), cmd.Role(), cmd.Code(), cmd.Name(), cmd.Phone(), h.now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ActorRepository().Add(ctx, a); err != nil {
		if errors.Is(err, ports.ErrDuplicateKey) {
			return kernel.UUID{}, ErrActorCodeIsTaken
		}
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return a.ID(), nil
}
