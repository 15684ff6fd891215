package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/order"

	"github.com/jmoiron/sqlx"
)

// GetCourierFeedQueryHandler returns ready delivery orders and the ones held by
// the calling courier, newest first.
type GetCourierFeedQueryHandler struct {
	db *sqlx.DB
}

func NewGetCourierFeedQueryHandler(db *sqlx.DB) GetCourierFeedQueryHandler {
	return GetCourierFeedQueryHandler{db: db}
}

func (h GetCourierFeedQueryHandler) Handle(ctx context.Context, query GetCourierFeedQuery) ([]CourierOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	code := query.CourierCode().Reveal()

	var active bool
	err := h.db.GetContext(ctx, &active, `
		SELECT EXISTS (
			SELECT 1 FROM actors WHERE role = $1 AND code = $2 AND is_active
		)
	`, actor.Courier.String(), code)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrUnauthorized
	}

	orders := make([]CourierOrderResponse, 0)
	err = h.db.SelectContext(ctx, &orders, `
		SELECT public_code, address, comment, status, delivery_type,
		       scheduled_time, client_name, client_phone, total_price
		FROM orders
		WHERE delivery_type = $1
		  AND (status = $2 OR (status = $3 AND accepted_by = $4))
		ORDER BY created_at DESC, id
		LIMIT $5
	`, order.Delivery.String(), order.Ready.String(), order.Delivering.String(), code, CourierFeedLimit)
	if err != nil {
		return nil, err
	}
	return orders, nil
}
