package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Principal is the actor acting through a valid session.
type Principal struct {
	SessionID kernel.UUID
	Role      actor.Role
	Code      actor.AccessCode
	Name      string
}

// AuthenticateSessionCommandHandler re-validates a binding against the
// directory. Expired bindings and bindings whose actor was deactivated or
// removed are deleted and the call fails with ErrUnauthorized.
type AuthenticateSessionCommandHandler struct {
	uowFactory SessionUoWFactory
	now        Clock
}

func NewAuthenticateSessionCommandHandler(uowFactory SessionUoWFactory, now Clock) AuthenticateSessionCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AuthenticateSessionCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (h AuthenticateSessionCommandHandler) Handle(ctx context.Context, cmd AuthenticateSessionCommand) (Principal, error) {
	if err := cmd.Validate(); err != nil {
		return Principal{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Principal{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessions := uow.SessionRepository()
	s, err := sessions.Get(ctx, cmd.SessionID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Principal{}, ErrUnauthorized
	}
	if err != nil {
		return Principal{}, err
	}

	if s.IsExpired(h.now().UTC()) {
		return Principal{}, h.revoke(ctx, uow, sessions, s.ID())
	}

	a, err := uow.ActorRepository().GetByCode(ctx, s.Role(), s.ActorCode())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return Principal{}, err
	}
	if a == nil || !a.CanAct(s.Role()) {
		return Principal{}, h.revoke(ctx, uow, sessions, s.ID())
	}

	return Principal{
		SessionID: s.ID(),
		Role:      a.Role(),
		Code:      a.Code(),
		Name:      a.Name(),
	}, nil
}

// revoke deletes the binding and returns ErrUnauthorized, or the storage error.
func (h AuthenticateSessionCommandHandler) revoke(
	ctx context.Context,
	uow TxManager,
	sessions ports.SessionRepository,
	id kernel.UUID,
) error {
	if err := sessions.Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}
	return ErrUnauthorized
}
