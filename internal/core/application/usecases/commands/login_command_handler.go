package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/session"
	"orderdesk/internal/pkg/errs"
)

// LoginResult identifies the new binding. SessionID is the only value that
// leaves the server; the access code stays in storage.
type LoginResult struct {
	SessionID kernel.UUID
	ActorName string
	ExpiresAt time.Time
}

// LoginCommandHandler authenticates chefs and couriers by access code.
// Unknown and inactive codes are indistinguishable to the caller.
type LoginCommandHandler struct {
	uowFactory SessionUoWFactory
	ttl        time.Duration
	now        Clock
}

func NewLoginCommandHandler(uowFactory SessionUoWFactory, ttl time.Duration, now Clock) LoginCommandHandler {
	if now == nil {
		now = time.Now
	}
	return LoginCommandHandler{
		uowFactory: uowFactory,
		ttl:        ttl,
		now:        now,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := uow.ActorRepository().GetByCode(ctx, cmd.Role(), cmd.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrUnauthorized
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !a.CanAct(cmd.Role()) {
		return LoginResult{}, ErrUnauthorized
	}

	s, err := session.NewSession(kernel.NewUUID(), a.Role(), a.Code(), h.now().UTC(), h.ttl)
	if err != nil {
		return LoginResult{}, err
	}

	if err = uow.SessionRepository().Add(ctx, s); err != nil {
		return LoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		SessionID: s.ID(),
		ActorName: a.Name(),
		ExpiresAt: s.ExpiresAt(),
	}, nil
}
