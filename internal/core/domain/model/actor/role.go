package actor

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Role distinguishes kitchen staff from delivery staff.
type Role string

const (
	Chef    Role = "chef"
	Courier Role = "courier"
)

func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if r != Chef && r != Courier {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is neither %q nor %q", string(r), Chef, Courier))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
