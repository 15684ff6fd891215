package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/keylock"

	"github.com/sirupsen/logrus"
)

// UpdateOrderStatusCommandHandler is the single authority for status changes.
//
// Per order, transitions are serialized twice: by an in-process lock keyed on
// the public code, and by a row lock taken when the order is loaded. The write
// itself is conditional on the version read, so a writer in another process
// that bypassed the row lock still cannot overwrite a newer assignment.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand("#K7Q2", "delivering", actor.Courier, code, "c-17")
//	if err != nil {
//	    return err // invalid status
//	}
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, ErrUnauthorized):
//	case errors.Is(err, errs.ErrObjectNotFound):
//	case errors.Is(err, ErrCourierNotFound):
//	case errors.Is(err, order.ErrOrderAlreadyAccepted):
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *keylock.KeyLock
	publisher  ports.OrderEventPublisher
	logger     logrus.FieldLogger
	now        Clock
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyLock,
	publisher ports.OrderEventPublisher,
	logger logrus.FieldLogger,
	now Clock,
) UpdateOrderStatusCommandHandler {
	if now == nil {
		now = time.Now
	}
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.WithField("component", "order-lifecycle"),
		now:        now,
	}
}

// Handle applies the transition or returns an error with the order unchanged.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// The event is published after the lock is released: a slow broker must
	// not hold up the next transition of the same order.
	unlock := h.locks.Lock(cmd.PublicCode())
	event, err := h.apply(ctx, cmd)
	unlock()
	if err != nil {
		return err
	}

	if err = h.publisher.PublishStatusChanged(ctx, event); err != nil {
		h.logger.WithError(err).
			WithField("public_code", event.PublicCode.String()).
			Warn("order status event was not published")
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) apply(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (ports.OrderStatusChanged, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actorRepo := uow.ActorRepository()
	orderRepo := uow.OrderRepository()

	if err := h.authorize(ctx, actorRepo, cmd); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	publicCode, err := order.NewPublicCode(cmd.PublicCode())
	if err != nil {
		return ports.OrderStatusChanged{}, errs.NewObjectNotFoundError("order", cmd.PublicCode())
	}

	o, err := orderRepo.GetByPublicCodeForUpdate(ctx, publicCode)
	if err != nil {
		return ports.OrderStatusChanged{}, err
	}

	courierCode := ""
	if cmd.Target() == order.Delivering {
		courierCode, err = h.activeCourier(ctx, actorRepo, cmd.CourierCode())
		if err != nil {
			return ports.OrderStatusChanged{}, err
		}
	}

	from := o.Status()
	if err = o.ChangeStatus(cmd.Target(), courierCode); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	return ports.OrderStatusChanged{
		PublicCode:   o.PublicCode(),
		From:         from,
		To:           o.Status(),
		DeliveryType: o.Details().DeliveryType,
		ChangedBy:    cmd.ActorRole().String(),
		OccurredAt:   h.now().UTC(),
	}, nil
}

func (h UpdateOrderStatusCommandHandler) authorize(
	ctx context.Context,
	actors ports.ActorRepository,
	cmd UpdateOrderStatusCommand,
) error {
	if cmd.ActorRole().Validate() != nil || cmd.ActorCode().IsZero() {
		return ErrUnauthorized
	}

	active, err := actors.IsActive(ctx, cmd.ActorRole(), cmd.ActorCode())
	if err != nil {
		return err
	}
	if !active {
		return ErrUnauthorized
	}
	return nil
}

func (h UpdateOrderStatusCommandHandler) activeCourier(
	ctx context.Context,
	actors ports.ActorRepository,
	raw string,
) (string, error) {
	code, err := actor.NewAccessCode(raw)
	if err != nil {
		return "", ErrCourierNotFound
	}

	active, err := actors.IsActive(ctx, actor.Courier, code)
	if err != nil {
		return "", err
	}
	if !active {
		return "", ErrCourierNotFound
	}
	return code.Reveal(), nil
}
