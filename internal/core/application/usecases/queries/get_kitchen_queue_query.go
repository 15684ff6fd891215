package queries

import (
	"errors"
	"time"

	"orderdesk/internal/pkg/guard"
)

// KitchenQueueLimit caps the chef panel.
const KitchenQueueLimit = 50

var ErrGetKitchenQueueQueryIsNotConstructed = errors.New(
	"GetKitchenQueueQuery must be created via NewGetKitchenQueueQuery constructor",
)

// GetKitchenQueueQuery lists orders the kitchen still has to work on.
// Authorization happens before the query runs: the caller holds a chef session.
type GetKitchenQueueQuery struct {
	guard guard.ConstructorGuard
}

func NewGetKitchenQueueQuery() GetKitchenQueueQuery {
	return GetKitchenQueueQuery{guard: guard.NewConstructorGuard()}
}

func (q GetKitchenQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenQueueQueryIsNotConstructed)
}

// KitchenOrderResponse is one card of the chef panel.
type KitchenOrderResponse struct {
	PublicCode    string     `json:"public_code"`
	ClientName    string     `json:"client_name"`
	DeliveryType  string     `json:"delivery_type"`
	ScheduledTime string     `json:"scheduled_time"`
	Comment       string     `json:"comment"`
	Status        string     `json:"status"`
	TotalPrice    int        `json:"total_price"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []ItemView `json:"items"`
}
