package commands

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrClientNameHasNonLetters = errors.New("name must contain letters only")
	ErrCartLineIsIncomplete    = errors.New("cart line needs name, price and quantity")
	ErrCartLineIsMalformed     = errors.New("price and quantity must be whole numbers")

	clientNamePattern = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z\s]+$`)
)

// CartLine is one untrusted cart entry. Nil fields were absent from the request.
// Price and Quantity hold the literal text of the submitted values.
type CartLine struct {
	Name     *string
	Price    *string
	Quantity *string
}

// CreateOrderParams is the raw customer submission.
type CreateOrderParams struct {
	ClientName    string
	ClientPhone   string
	DeliveryType  string
	Address       string
	ScheduledTime string
	Comment       string
	Cart          []CartLine
}

// CreateOrderCommand is a validated customer order ready to be persisted.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    ClientName:   "Aibek",
//	    ClientPhone:  "0700123456",
//	    DeliveryType: "pickup",
//	    Cart:         lines,
//	})
//	if err != nil {
//	    return err // first failed rule, user-correctable
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	details order.Details
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand runs the intake rules in order and stops at the first
// failure: name, phone, delivery type, address, cart, comment, scheduled time.
// The total is checked by the handler once the surcharge is known.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	steps := []func() error{
		func() error { return c.setClientName(params.ClientName) },
		func() error { return c.setClientPhone(params.ClientPhone) },
		func() error { return c.setDeliveryType(params.DeliveryType) },
		func() error { return c.setAddress(params.Address) },
		func() error { return c.setCart(params.Cart) },
		func() error { return c.setComment(params.Comment) },
		func() error { return c.setScheduledTime(params.ScheduledTime) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setClientName(raw string) error {
	name := strings.TrimSpace(raw)
	if name == "" {
		return errs.NewValueIsRequiredError("client_name")
	}
	if n := utf8.RuneCountInString(name); n > order.MaxClientNameLength {
		return errs.NewValueIsOutOfRangeError("client_name length", n, 1, order.MaxClientNameLength)
	}
	if !clientNamePattern.MatchString(name) {
		return errs.NewValueIsInvalidErrorWithCause("client_name", ErrClientNameHasNonLetters)
	}

	c.details.ClientName = name
	return nil
}

func (c *CreateOrderCommand) setClientPhone(raw string) error {
	phone, err := kernel.NewPhone(raw)
	if err != nil {
		return err
	}

	c.details.ClientPhone = phone
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(raw string) error {
	deliveryType, err := order.ParseDeliveryType(raw)
	if err != nil {
		return err
	}

	c.details.DeliveryType = deliveryType
	return nil
}

// setAddress keeps the address only for delivery orders.
func (c *CreateOrderCommand) setAddress(raw string) error {
	address := strings.TrimSpace(raw)
	if !c.details.DeliveryType.RequiresAddress() {
		c.details.Address = address
		return nil
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(address); n > order.MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", n, 1, order.MaxAddressLength)
	}

	c.details.Address = address
	return nil
}

func (c *CreateOrderCommand) setCart(lines []CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	if len(lines) > order.MaxCartLines {
		return errs.NewValueIsOutOfRangeError("cart lines", len(lines), 1, order.MaxCartLines)
	}

	items := make([]order.Item, 0, len(lines))
	for i, line := range lines {
		item, err := parseCartLine(line)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("cart["+strconv.Itoa(i)+"]", err)
		}
		items = append(items, item)
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setComment(raw string) error {
	comment := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(comment); n > order.MaxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", n, 0, order.MaxCommentLength)
	}

	c.details.Comment = comment
	return nil
}

func (c *CreateOrderCommand) setScheduledTime(raw string) error {
	scheduled := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(scheduled); n > order.MaxScheduledTimeLength {
		return errs.NewValueIsOutOfRangeError("scheduled_time length", n, 0, order.MaxScheduledTimeLength)
	}

	c.details.ScheduledTime = scheduled
	return nil
}

func parseCartLine(line CartLine) (order.Item, error) {
	if line.Name == nil || line.Price == nil || line.Quantity == nil {
		return order.Item{}, ErrCartLineIsIncomplete
	}

	price, err := strconv.Atoi(strings.TrimSpace(*line.Price))
	if err != nil {
		return order.Item{}, ErrCartLineIsMalformed
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(*line.Quantity))
	if err != nil {
		return order.Item{}, ErrCartLineIsMalformed
	}

	return order.NewItem(*line.Name, price, quantity)
}
