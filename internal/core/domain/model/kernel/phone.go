package kernel

import (
	"errors"
	"regexp"
	"strings"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrPhoneIsNotConstructed = errors.New("Phone must be created via NewPhone constructor")
	ErrPhoneFormat           = errors.New("expected +996, 996 or 0 followed by 9 digits, e.g. +996 700 123 456")

	phonePattern = regexp.MustCompile(`^(\+996|996|0)\d{9}$`)
)

// Phone is a Kyrgyzstan phone number normalized to the +996XXXXXXXXX form.
//
// Accepted inputs (spaces anywhere are ignored):
//
//	0700123456     -> +996700123456
//	996700123456   -> +996700123456
//	+996700123456  -> +996700123456
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

// NewPhone validates and normalizes raw customer input.
func NewPhone(raw string) (Phone, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if compact == "" {
		return Phone{}, errs.NewValueIsRequiredError("client_phone")
	}
	if !phonePattern.MatchString(compact) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("client_phone", ErrPhoneFormat)
	}

	switch {
	case strings.HasPrefix(compact, "0"):
		compact = "+996" + compact[1:]
	case !strings.HasPrefix(compact, "+"):
		compact = "+" + compact
	}

	return Phone{value: compact, guard: guard.NewConstructorGuard()}, nil
}

// RestorePhone wraps an already normalized value loaded from storage.
func RestorePhone(value string) Phone {
	return Phone{value: value, guard: guard.NewConstructorGuard()}
}

// String returns the normalized number.
func (p Phone) String() string {
	return p.value
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}
