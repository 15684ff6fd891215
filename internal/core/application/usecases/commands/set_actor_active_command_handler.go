package commands

import (
	"context"
)

type SetActorActiveCommandHandler struct {
	uowFactory ActorUoWFactory
}

func NewSetActorActiveCommandHandler(uowFactory ActorUoWFactory) SetActorActiveCommandHandler {
	return SetActorActiveCommandHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrObjectNotFound for unknown codes.
func (h SetActorActiveCommandHandler) Handle(ctx context.Context, cmd SetActorActiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actors := uow.ActorRepository()
	a, err := actors.GetByCode(ctx, cmd.Role(), cmd.Code())
	if err != nil {
		return err
	}

	if cmd.Active() {
		a.Activate()
	} else {
		a.Deactivate()
	}

	if err = actors.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
