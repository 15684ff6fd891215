package order

import (
	"errors"
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// ErrInvalidStatus is wrapped by every error returned for an unknown status literal.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the lifecycle state of an order. Values are the lowercase literals
// stored in the database and exchanged over HTTP.
//
// Intended flow:
//
//	new ──> cooking ──> ready ──> delivering ──> completed
//	 │         │          │           │
//	 └─────────┴──────────┴───────────┴──> cancelled
//
// The flow is documentation only: any status may be set from any other status.
// Completed and Cancelled are terminal in the sense that reaching them releases
// the courier holding the order.
type Status string

const (
	New        Status = "new"
	Cooking    Status = "cooking"
	Ready      Status = "ready"
	Delivering Status = "delivering"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// AllStatuses returns every valid status in flow order.
func AllStatuses() []Status {
	return []Status{New, Cooking, Ready, Delivering, Completed, Cancelled}
}

// ParseStatus converts an external literal into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate reports whether s is one of the six known literals.
func (s Status) Validate() error {
	switch s {
	case New, Cooking, Ready, Delivering, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%w: %q", ErrInvalidStatus, string(s)),
		)
	}
}

// IsTerminal reports whether s ends the lifecycle.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsKitchen reports whether the order still waits for the kitchen.
func (s Status) IsKitchen() bool {
	return s == New || s == Cooking
}

func (s Status) String() string {
	return string(s)
}
