package actor

import (
	"strings"
	"unicode/utf8"

	"orderdesk/internal/pkg/errs"
)

// MaxAccessCodeLength is the longest code accepted at login.
const MaxAccessCodeLength = 50

// AccessCode is the bearer secret of a chef or courier. It is both the actor's
// identity and its only credential, so String masks it; use Reveal only when
// the raw value has to reach storage or a comparison.
type AccessCode struct {
	value string
}

// NewAccessCode trims surrounding whitespace and checks the length.
func NewAccessCode(raw string) (AccessCode, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return AccessCode{}, errs.NewValueIsRequiredError("code")
	}
	if n := utf8.RuneCountInString(code); n > MaxAccessCodeLength {
		return AccessCode{}, errs.NewValueIsOutOfRangeError("code length", n, 1, MaxAccessCodeLength)
	}
	return AccessCode{value: code}, nil
}

// Reveal returns the raw code.
func (c AccessCode) Reveal() string {
	return c.value
}

// IsZero reports whether the code is unset.
func (c AccessCode) IsZero() bool {
	return c.value == ""
}

// String keeps at most the first two characters visible.
func (c AccessCode) String() string {
	return Mask(c.value)
}

// Mask hides a raw access code for logs and admin output.
func Mask(raw string) string {
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	visible := 2
	if len(runes) <= 4 {
		visible = 0
	}
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible)
}
