package commands

import (
	"context"
)

type PurgeExpiredSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
}

func NewPurgeExpiredSessionsCommandHandler(uowFactory SessionUoWFactory) PurgeExpiredSessionsCommandHandler {
	return PurgeExpiredSessionsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of bindings removed.
func (h PurgeExpiredSessionsCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredSessionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.SessionRepository().DeleteExpired(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
