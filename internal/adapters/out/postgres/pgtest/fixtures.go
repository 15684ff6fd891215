package pgtest

import (
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// NewOrder builds a two-line order in status New.
func NewOrder(publicCode, secretCode string, deliveryType order.DeliveryType, createdAt time.Time) (*order.Order, error) {
	phone, err := kernel.NewPhone("0700123456")
	if err != nil {
		return nil, err
	}

	plov, err := order.NewItem("Plov", 350, 2)
	if err != nil {
		return nil, err
	}
	tea, err := order.NewItem("Green tea", 80, 1)
	if err != nil {
		return nil, err
	}

	details := order.Details{
		ClientName:   "Aibek",
		ClientPhone:  phone,
		DeliveryType: deliveryType,
		Comment:      "no onions",
	}
	if deliveryType == order.Delivery {
		details.Address = "Chui avenue 120, apt 5"
	}

	return order.NewOrder(
		kernel.NewUUID(),
		order.PublicCode(publicCode),
		order.SecretCode(secretCode),
		details,
		[]order.Item{plov, tea},
		order.DefaultDeliverySurcharge,
		createdAt,
	)
}

// NewActor builds an active actor.
func NewActor(role actor.Role, rawCode, name string, createdAt time.Time) (*actor.Actor, error) {
	code, err := actor.NewAccessCode(rawCode)
	if err != nil {
		return nil, err
	}
	phone := ""
	if role == actor.Courier {
		phone = "+996555000111"
	}
	return actor.NewActor(kernel.NewUUID(), role, code, name, phone, createdAt)
}
