package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type kitchenOrderRow struct {
	ID            uuid.UUID `db:"id"`
	PublicCode    string    `db:"public_code"`
	ClientName    string    `db:"client_name"`
	DeliveryType  string    `db:"delivery_type"`
	ScheduledTime string    `db:"scheduled_time"`
	Comment       string    `db:"comment"`
	Status        string    `db:"status"`
	TotalPrice    int       `db:"total_price"`
	CreatedAt     time.Time `db:"created_at"`
}

// GetKitchenQueueQueryHandler returns new and cooking orders, newest first.
type GetKitchenQueueQueryHandler struct {
	db *sqlx.DB
}

func NewGetKitchenQueueQueryHandler(db *sqlx.DB) GetKitchenQueueQueryHandler {
	return GetKitchenQueueQueryHandler{db: db}
}

func (h GetKitchenQueueQueryHandler) Handle(ctx context.Context, query GetKitchenQueueQuery) ([]KitchenOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []kitchenOrderRow
	err := h.db.SelectContext(ctx, &rows, `
		SELECT id, public_code, client_name, delivery_type, scheduled_time,
		       comment, status, total_price, created_at
		FROM orders
		WHERE status IN ($1, $2)
		ORDER BY created_at DESC, id
		LIMIT $3
	`, order.New.String(), order.Cooking.String(), KitchenQueueLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	items, err := loadItems(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]KitchenOrderResponse, 0, len(rows))
	for _, row := range rows {
		lines := items[row.ID]
		if lines == nil {
			lines = []ItemView{}
		}
		orders = append(orders, KitchenOrderResponse{
			PublicCode:    row.PublicCode,
			ClientName:    row.ClientName,
			DeliveryType:  row.DeliveryType,
			ScheduledTime: row.ScheduledTime,
			Comment:       row.Comment,
			Status:        row.Status,
			TotalPrice:    row.TotalPrice,
			CreatedAt:     utc(row.CreatedAt),
			Items:         lines,
		})
	}
	return orders, nil
}
