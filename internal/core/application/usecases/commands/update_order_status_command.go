package commands

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks the lifecycle engine to move an order to a new
// status on behalf of an authenticated chef or courier.
//
// The caller identity comes from the session binding and is re-checked against
// the directory inside the transaction, so a stale binding cannot act.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	publicCode  string
	target      order.Status
	actorRole   actor.Role
	actorCode   actor.AccessCode
	courierCode string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand validates the target status. An unknown literal
// fails with an error wrapping order.ErrInvalidStatus.
func NewUpdateOrderStatusCommand(
	publicCode string,
	target string,
	actorRole actor.Role,
	actorCode actor.AccessCode,
	courierCode string,
) (UpdateOrderStatusCommand, error) {
	status, err := order.ParseStatus(strings.TrimSpace(target))
	if err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		publicCode:  strings.TrimSpace(publicCode),
		target:      status,
		actorRole:   actorRole,
		actorCode:   actorCode,
		courierCode: strings.TrimSpace(courierCode),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) PublicCode() string {
	return c.publicCode
}

func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c UpdateOrderStatusCommand) ActorRole() actor.Role {
	return c.actorRole
}

func (c UpdateOrderStatusCommand) ActorCode() actor.AccessCode {
	return c.actorCode
}

// CourierCode is the courier to assign when the target is delivering.
func (c UpdateOrderStatusCommand) CourierCode() string {
	return c.courierCode
}
