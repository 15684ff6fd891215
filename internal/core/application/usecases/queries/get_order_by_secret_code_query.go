package queries

import (
	"errors"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderBySecretCodeQueryIsNotConstructed = errors.New(
	"GetOrderBySecretCodeQuery must be created via NewGetOrderBySecretCodeQuery constructor",
)

// GetOrderBySecretCodeQuery powers the customer tracking page.
type GetOrderBySecretCodeQuery struct {
	secretCode string
	guard      guard.ConstructorGuard
}

// NewGetOrderBySecretCodeQuery never fails: a code that cannot exist simply
// finds nothing, so probing malformed tokens looks the same as probing unknown ones.
func NewGetOrderBySecretCodeQuery(rawCode string) GetOrderBySecretCodeQuery {
	return GetOrderBySecretCodeQuery{
		secretCode: strings.TrimSpace(rawCode),
		guard:      guard.NewConstructorGuard(),
	}
}

func (q GetOrderBySecretCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBySecretCodeQueryIsNotConstructed)
}

func (q GetOrderBySecretCodeQuery) SecretCode() string {
	return q.secretCode
}

// possible reports whether the code could belong to any order.
func (q GetOrderBySecretCodeQuery) possible() bool {
	return order.SecretCode(q.secretCode).Validate() == nil
}

// TrackedOrderResponse is what the customer sees. It omits the client's
// contact data and the courier reference.
type TrackedOrderResponse struct {
	PublicCode    string     `json:"public_code"`
	Status        string     `json:"status"`
	DeliveryType  string     `json:"delivery_type"`
	Address       string     `json:"address"`
	ScheduledTime string     `json:"scheduled_time"`
	Comment       string     `json:"comment"`
	TotalPrice    int        `json:"total_price"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []ItemView `json:"items"`
}
