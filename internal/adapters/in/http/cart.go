package http

import (
	"bytes"
	"encoding/json"
	"strings"

	"orderdesk/internal/core/application/usecases/commands"
)

// CartLineRequest keeps the literal text of price and quantity so the intake
// rules can tell 2 and "2" (accepted) from 2.5, true or {} (rejected).
type CartLineRequest struct {
	Name     *string `json:"name"     validate:"required"`
	Price    *string `json:"price"    validate:"required"`
	Quantity *string `json:"quantity" validate:"required"`
}

func (l *CartLineRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     *string         `json:"name"`
		Price    json.RawMessage `json:"price"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Name = raw.Name
	l.Price = literal(raw.Price)
	l.Quantity = literal(raw.Quantity)
	return nil
}

// literal returns nil for an absent or null value, the content of a JSON
// string, and the raw token text of anything else.
func literal(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return &s
	}

	s = string(raw)
	return &s
}

// trim drops the surrounding whitespace the intake rules ignore anyway, so the
// length tags count the same characters the constructors do.
func (r *NewOrderRequest) trim() {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.Address = strings.TrimSpace(r.Address)
	r.Comment = strings.TrimSpace(r.Comment)
	r.ScheduledTime = strings.TrimSpace(r.ScheduledTime)
}

func (r NewOrderRequest) toParams() commands.CreateOrderParams {
	cart := make([]commands.CartLine, len(r.Cart))
	for i, line := range r.Cart {
		cart[i] = commands.CartLine{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		}
	}
	return commands.CreateOrderParams{
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		DeliveryType:  r.DeliveryType,
		Address:       r.Address,
		ScheduledTime: r.ScheduledTime,
		Comment:       r.Comment,
		Cart:          cart,
	}
}
