package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// maxCreateAttempts bounds retries after a code lost the race to another insert.
const maxCreateAttempts = 3

// CreateOrderResult is what the customer receives after a successful order.
type CreateOrderResult struct {
	PublicCode order.PublicCode
	SecretCode order.SecretCode
	TotalPrice int
}

// CreateOrderCommandHandler persists validated orders with freshly issued codes.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, issuer, 50, time.Now)
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s, total %d", res.PublicCode, res.TotalPrice)
type CreateOrderCommandHandler struct {
	uowFactory        OrderUoWFactory
	issuer            services.OrderCodeIssuer
	deliverySurcharge int
	now               Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	issuer services.OrderCodeIssuer,
	deliverySurcharge int,
	now Clock,
) CreateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory:        uowFactory,
		issuer:            issuer,
		deliverySurcharge: deliverySurcharge,
		now:               now,
	}
}

// Handle computes the total, issues codes and stores the order with its items
// in one transaction. A duplicate code reported by storage restarts the
// attempt with new codes.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if _, err := order.CalculateTotal(cmd.Items(), cmd.Details().DeliveryType, h.deliverySurcharge); err != nil {
		return CreateOrderResult{}, err
	}

	var err error
	for range maxCreateAttempts {
		var res CreateOrderResult
		res, err = h.create(ctx, cmd)
		if !errors.Is(err, ports.ErrDuplicateKey) {
			return res, err
		}
	}

	return CreateOrderResult{}, err
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	publicCode, secretCode, err := h.issuer.Issue(ctx, orderRepo)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		publicCode,
		secretCode,
		cmd.Details(),
		cmd.Items(),
		h.deliverySurcharge,
		h.now().UTC(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		PublicCode: o.PublicCode(),
		SecretCode: o.SecretCode(),
		TotalPrice: o.TotalPrice(),
	}, nil
}
