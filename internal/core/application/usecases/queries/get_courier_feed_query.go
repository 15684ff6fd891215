package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/pkg/guard"
)

// CourierFeedLimit caps the courier panel.
const CourierFeedLimit = 20

var ErrGetCourierFeedQueryIsNotConstructed = errors.New(
	"GetCourierFeedQuery must be created via NewGetCourierFeedQuery constructor",
)

// GetCourierFeedQuery lists delivery orders a courier may pick up plus the ones
// it already carries. The courier is identified by an explicit code.
type GetCourierFeedQuery struct {
	courierCode actor.AccessCode
	guard       guard.ConstructorGuard
}

// NewGetCourierFeedQuery rejects a missing or oversized code as ErrUnauthorized.
func NewGetCourierFeedQuery(rawCode string) (GetCourierFeedQuery, error) {
	code, err := actor.NewAccessCode(rawCode)
	if err != nil {
		return GetCourierFeedQuery{}, ErrUnauthorized
	}
	return GetCourierFeedQuery{courierCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierFeedQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierFeedQueryIsNotConstructed)
}

func (q GetCourierFeedQuery) CourierCode() actor.AccessCode {
	return q.courierCode
}

type CourierOrderResponse struct {
	PublicCode    string `json:"public_code" db:"public_code"`
	Address       string `json:"address" db:"address"`
	Comment       string `json:"comment" db:"comment"`
	Status        string `json:"status" db:"status"`
	DeliveryType  string `json:"delivery_type" db:"delivery_type"`
	ScheduledTime string `json:"scheduled_time" db:"scheduled_time"`
	ClientName    string `json:"client_name" db:"client_name"`
	ClientPhone   string `json:"client_phone" db:"client_phone"`
	TotalPrice    int    `json:"total_price" db:"total_price"`
}
