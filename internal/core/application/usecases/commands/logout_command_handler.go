package commands

import (
	"context"
)

// LogoutCommandHandler removes the binding. Logging out twice is not an error.
type LogoutCommandHandler struct {
	uowFactory SessionUoWFactory
}

func NewLogoutCommandHandler(uowFactory SessionUoWFactory) LogoutCommandHandler {
	return LogoutCommandHandler{uowFactory: uowFactory}
}

func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
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

	if err := uow.SessionRepository().Delete(ctx, cmd.SessionID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
