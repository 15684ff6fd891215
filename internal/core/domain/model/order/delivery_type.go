package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// DeliveryType tells whether the customer collects the order or a courier brings it.
type DeliveryType string

const (
	Pickup   DeliveryType = "pickup"
	Delivery DeliveryType = "delivery"
)

// ParseDeliveryType accepts exactly "pickup" or "delivery".
func ParseDeliveryType(raw string) (DeliveryType, error) {
	t := DeliveryType(raw)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t DeliveryType) Validate() error {
	if t != Pickup && t != Delivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_type",
			fmt.Errorf("%q is neither %q nor %q", string(t), Pickup, Delivery),
		)
	}
	return nil
}

// RequiresAddress reports whether an address must accompany the order.
func (t DeliveryType) RequiresAddress() bool {
	return t == Delivery
}

func (t DeliveryType) String() string {
	return string(t)
}
