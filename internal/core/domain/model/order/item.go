package order

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"orderdesk/internal/pkg/errs"
)

const (
	MinItemPrice       = 0
	MaxItemPrice       = 10000
	MinItemQuantity    = 1
	MaxItemQuantity    = 100
	MaxProductNameSize = 200
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a snapshot of one cart line at order time. It does not reference the
// live catalog, so later price changes never alter historical orders.
type Item struct {
	productName  string
	productPrice int
	quantity     int

	isConstructed bool
}

// NewItem validates price and quantity bounds. The product name is truncated
// to MaxProductNameSize characters.
func NewItem(productName string, productPrice, quantity int) (Item, error) {
	if productPrice < MinItemPrice || productPrice > MaxItemPrice {
		return Item{}, errs.NewValueIsOutOfRangeError("price", productPrice, MinItemPrice, MaxItemPrice)
	}
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, MinItemQuantity, MaxItemQuantity)
	}

	return Item{
		productName:   truncateRunes(productName, MaxProductNameSize),
		productPrice:  productPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// RestoreItem rebuilds a stored snapshot without re-applying the intake bounds.
func RestoreItem(productName string, productPrice, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{
		productName:   productName,
		productPrice:  productPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) ProductPrice() int {
	return i.productPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

// TotalPrice is price times quantity.
func (i Item) TotalPrice() int {
	return i.productPrice * i.quantity
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
