// Package queries holds the read side: plain SQL through sqlx, projected into
// response structs that never pass through the domain aggregates.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ItemView is one cart line as stored at order time.
type ItemView struct {
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal int    `json:"line_total"`
}

type itemRow struct {
	OrderID  uuid.UUID `db:"order_id"`
	Name     string    `db:"product_name"`
	Price    int       `db:"product_price"`
	Quantity int       `db:"quantity"`
}

// loadItems fetches the lines of several orders in one round trip, keyed by order id.
func loadItems(ctx context.Context, db sqlx.QueryerContext, orderIDs []uuid.UUID) (map[uuid.UUID][]ItemView, error) {
	result := make(map[uuid.UUID][]ItemView, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	var rows []itemRow
	err := sqlx.SelectContext(ctx, db, &rows, `
		SELECT order_id, product_name, product_price, quantity
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.OrderID] = append(result[row.OrderID], ItemView{
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
			LineTotal: row.Price * row.Quantity,
		})
	}
	return result, nil
}

func utc(t time.Time) time.Time {
	return t.UTC()
}
