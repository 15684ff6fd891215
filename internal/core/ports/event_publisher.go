package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after a status transition has been committed.
// It never carries the secret code.
type OrderStatusChanged struct {
	PublicCode   order.PublicCode
	From         order.Status
	To           order.Status
	DeliveryType order.DeliveryType
	ChangedBy    string
	OccurredAt   time.Time
}

// OrderEventPublisher delivers order events to other systems on a best-effort basis.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
