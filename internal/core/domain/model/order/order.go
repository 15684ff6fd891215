package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

const (
	// DefaultDeliverySurcharge is added to delivery orders.
	DefaultDeliverySurcharge = 50
	// MaxTotalPrice caps orders accepted online; larger orders go through the phone.
	MaxTotalPrice = 100000
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierIsRequired is returned when moving to Delivering without a courier.
	ErrCourierIsRequired = errors.New("courier is required to start delivering")

	// ErrOrderAlreadyAccepted is returned when a different courier already holds the order.
	ErrOrderAlreadyAccepted = errors.New("order is already accepted by another courier")
)

// Details is the customer-provided part of an order.
type Details struct {
	ClientName    string
	ClientPhone   kernel.Phone
	DeliveryType  DeliveryType
	Address       string
	ScheduledTime string
	Comment       string
}

// Order is the aggregate root of the lifecycle engine. It owns its item snapshots
// and the loose reference to the courier currently holding it.
//
// Invariants:
//   - public and secret codes are valid and fixed at creation
//   - total price equals the item sum plus the surcharge applied at creation
//   - accepted_by is cleared whenever the order reaches a terminal status
//   - status changes are all-or-nothing: a rejected change leaves the order untouched
type Order struct {
	id         kernel.UUID
	publicCode PublicCode
	secretCode SecretCode
	details    Details
	items      []Item
	totalPrice int
	status     Status

	// acceptedBy is a courier access code, not an ownership edge.
	acceptedBy *string

	createdAt time.Time
	version   int

	isConstructed bool
}

// CalculateTotal sums the cart and adds the surcharge for delivery orders.
// Totals above MaxTotalPrice are rejected.
func CalculateTotal(items []Item, deliveryType DeliveryType, surcharge int) (int, error) {
	total := 0
	for _, item := range items {
		total += item.TotalPrice()
	}
	if deliveryType == Delivery {
		total += surcharge
	}
	if total > MaxTotalPrice {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(
			"total_price", total, 0, MaxTotalPrice,
			errors.New("order is too large to be placed online, please call us"),
		)
	}
	return total, nil
}

// NewOrder creates an order in status New. The total is computed from the items
// and the delivery surcharge.
func NewOrder(
	id kernel.UUID,
	publicCode PublicCode,
	secretCode SecretCode,
	details Details,
	items []Item,
	deliverySurcharge int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		createdAt:     createdAt,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCodes(publicCode, secretCode),
		o.setDetails(details),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total, err := CalculateTotal(o.items, o.details.DeliveryType, deliverySurcharge)
	if err != nil {
		return nil, err
	}
	o.totalPrice = total

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(
	id kernel.UUID,
	publicCode PublicCode,
	secretCode SecretCode,
	details Details,
	items []Item,
	totalPrice int,
	status Status,
	acceptedBy *string,
	createdAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		totalPrice:    totalPrice,
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCodes(publicCode, secretCode),
		o.setDetails(details),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status.IsTerminal() && acceptedBy != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"accepted_by",
			fmt.Errorf("%s order cannot be held by a courier", status),
		)
	}

	o.status = status
	if acceptedBy != nil && *acceptedBy != "" {
		courier := *acceptedBy
		o.acceptedBy = &courier
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) PublicCode() PublicCode {
	return o.publicCode
}

func (o *Order) SecretCode() SecretCode {
	return o.secretCode
}

func (o *Order) Details() Details {
	return o.details
}

// Items returns a copy of the item snapshots.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalPrice() int {
	return o.totalPrice
}

func (o *Order) Status() Status {
	return o.status
}

// AcceptedBy returns the code of the courier holding the order, or nil.
func (o *Order) AcceptedBy() *string {
	if o.acceptedBy == nil {
		return nil
	}
	courier := *o.acceptedBy
	return &courier
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version is the optimistic concurrency token read from storage.
func (o *Order) Version() int {
	return o.version
}

// ChangeStatus applies a status transition together with its courier side effects:
//   - Delivering assigns courierCode, which must be non-empty. A Delivering order
//     held by a different courier is rejected with ErrOrderAlreadyAccepted.
//   - Completed and Cancelled release the courier unconditionally.
//   - Any other target leaves the courier reference untouched.
//
// Adjacency is not checked. Every check runs before the first write, so on error
// the order is unchanged.
func (o *Order) ChangeStatus(target Status, courierCode string) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch {
	case target == Delivering:
		if courierCode == "" {
			return ErrCourierIsRequired
		}
		if o.status == Delivering && o.acceptedBy != nil && *o.acceptedBy != courierCode {
			return ErrOrderAlreadyAccepted
		}
		o.acceptedBy = &courierCode
	case target.IsTerminal():
		o.acceptedBy = nil
	}

	o.status = target
	return nil
}

// IsVisibleToCourier reports whether courierCode should see the order in its feed.
func (o *Order) IsVisibleToCourier(courierCode string) bool {
	if o.details.DeliveryType != Delivery {
		return false
	}
	if o.status == Ready {
		return true
	}
	return o.status == Delivering && o.acceptedBy != nil && *o.acceptedBy == courierCode
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCodes(publicCode PublicCode, secretCode SecretCode) error {
	if err := errors.Join(publicCode.Validate(), secretCode.Validate()); err != nil {
		return err
	}
	o.publicCode = publicCode
	o.secretCode = secretCode
	return nil
}

func (o *Order) setDetails(details Details) error {
	if strings.TrimSpace(details.ClientName) == "" {
		return errs.NewValueIsRequiredError("client_name")
	}
	if err := details.ClientPhone.Validate(); err != nil {
		return err
	}
	if err := details.DeliveryType.Validate(); err != nil {
		return err
	}
	if details.DeliveryType.RequiresAddress() && strings.TrimSpace(details.Address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(details.ScheduledTime); n > MaxScheduledTimeLength {
		return errs.NewValueIsOutOfRangeError("scheduled_time length", n, 0, MaxScheduledTimeLength)
	}
	o.details = details
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
