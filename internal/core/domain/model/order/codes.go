package order

import (
	"fmt"
	"regexp"

	"orderdesk/internal/pkg/errs"
)

const (
	// PublicCodeAlphabet is the character set of the four characters after '#'.
	PublicCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	PublicCodeLength   = 4

	// MaxSecretCodeLength bounds tracking lookups; longer input never matches.
	MaxSecretCodeLength = 100
)

var (
	publicCodePattern = regexp.MustCompile(`^#[A-Z0-9]{4}$`)
	secretCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// PublicCode is the short shareable identifier of an order, e.g. "#K7Q2".
// It is not a secret: staff see it freely.
type PublicCode string

// NewPublicCode validates the '#' + 4 uppercase alphanumerics format.
func NewPublicCode(raw string) (PublicCode, error) {
	c := PublicCode(raw)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c PublicCode) Validate() error {
	if c == "" {
		return errs.NewValueIsRequiredError("public_code")
	}
	if !publicCodePattern.MatchString(string(c)) {
		return errs.NewValueIsInvalidErrorWithCause("public_code", fmt.Errorf("%q is not of form #XXXX", string(c)))
	}
	return nil
}

func (c PublicCode) String() string {
	return string(c)
}

// SecretCode is the customer's private tracking capability. It is URL safe and
// must never be derivable from the public code.
type SecretCode string

// NewSecretCode validates a URL-safe token of at most MaxSecretCodeLength characters.
func NewSecretCode(raw string) (SecretCode, error) {
	c := SecretCode(raw)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c SecretCode) Validate() error {
	if c == "" {
		return errs.NewValueIsRequiredError("secret_code")
	}
	if len(c) > MaxSecretCodeLength {
		return errs.NewValueIsOutOfRangeError("secret_code length", len(c), 1, MaxSecretCodeLength)
	}
	if !secretCodePattern.MatchString(string(c)) {
		return errs.NewValueIsInvalidError("secret_code")
	}
	return nil
}

// String returns the raw token. Callers must not log it.
func (c SecretCode) String() string {
	return string(c)
}
