package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type trackedOrderRow struct {
	ID            uuid.UUID `db:"id"`
	PublicCode    string    `db:"public_code"`
	Status        string    `db:"status"`
	DeliveryType  string    `db:"delivery_type"`
	Address       string    `db:"address"`
	ScheduledTime string    `db:"scheduled_time"`
	Comment       string    `db:"comment"`
	TotalPrice    int       `db:"total_price"`
	CreatedAt     time.Time `db:"created_at"`
}

type GetOrderBySecretCodeQueryHandler struct {
	db *sqlx.DB
}

func NewGetOrderBySecretCodeQueryHandler(db *sqlx.DB) GetOrderBySecretCodeQueryHandler {
	return GetOrderBySecretCodeQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown and malformed codes alike.
// The code itself is never echoed in the error.
func (h GetOrderBySecretCodeQueryHandler) Handle(ctx context.Context, query GetOrderBySecretCodeQuery) (TrackedOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackedOrderResponse{}, err
	}

	notFound := errs.NewObjectNotFoundError("order", "tracking code")
	if !query.possible() {
		return TrackedOrderResponse{}, notFound
	}

	var row trackedOrderRow
	err := h.db.GetContext(ctx, &row, `
		SELECT id, public_code, status, delivery_type, address, scheduled_time,
		       comment, total_price, created_at
		FROM orders
		WHERE secret_code = $1
	`, query.SecretCode())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackedOrderResponse{}, notFound
		}
		return TrackedOrderResponse{}, err
	}

	items, err := loadItems(ctx, h.db, []uuid.UUID{row.ID})
	if err != nil {
		return TrackedOrderResponse{}, err
	}
	lines := items[row.ID]
	if lines == nil {
		lines = []ItemView{}
	}

	return TrackedOrderResponse{
		PublicCode:    row.PublicCode,
		Status:        row.Status,
		DeliveryType:  row.DeliveryType,
		Address:       row.Address,
		ScheduledTime: row.ScheduledTime,
		Comment:       row.Comment,
		TotalPrice:    row.TotalPrice,
		CreatedAt:     utc(row.CreatedAt),
		Items:         lines,
	}, nil
}
