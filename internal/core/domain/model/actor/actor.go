package actor

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

const MaxNameLength = 100

var (
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")
	ErrPhoneOnlyForCouriers  = errors.New("only couriers carry a phone number")
)

// Actor is a chef or courier authenticated solely by its access code.
// Actors are created and edited by an administrator only. Deactivation is a
// soft disable that revokes every live session on its next use.
type Actor struct {
	id        kernel.UUID
	role      Role
	code      AccessCode
	name      string
	phone     string
	isActive  bool
	createdAt time.Time

	isConstructed bool
}

// NewActor creates an active actor.
func NewActor(id kernel.UUID, role Role, code AccessCode, name, phone string, createdAt time.Time) (*Actor, error) {
	a := &Actor{
		isActive:      true,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if err := errors.Join(
		a.setID(id),
		a.setRoleAndPhone(role, phone),
		a.setCode(code),
		a.setName(name),
	); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreActor rebuilds an actor loaded from storage.
func RestoreActor(
	id kernel.UUID,
	role Role,
	code AccessCode,
	name, phone string,
	isActive bool,
	createdAt time.Time,
) (*Actor, error) {
	a, err := NewActor(id, role, code, name, phone, createdAt)
	if err != nil {
		return nil, err
	}
	a.isActive = isActive
	return a, nil
}

func (a *Actor) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a *Actor) ID() kernel.UUID {
	return a.id
}

func (a *Actor) Role() Role {
	return a.role
}

func (a *Actor) Code() AccessCode {
	return a.code
}

func (a *Actor) Name() string {
	return a.name
}

func (a *Actor) Phone() string {
	return a.phone
}

func (a *Actor) IsActive() bool {
	return a.isActive
}

func (a *Actor) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Actor) Activate() {
	a.isActive = true
}

func (a *Actor) Deactivate() {
	a.isActive = false
}

// CanAct reports whether the actor may perform privileged operations as role.
func (a *Actor) CanAct(role Role) bool {
	return a.isActive && a.role == role
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRoleAndPhone(role Role, phone string) error {
	if err := role.Validate(); err != nil {
		return err
	}
	phone = strings.TrimSpace(phone)
	if phone != "" && role != Courier {
		return errs.NewValueIsInvalidErrorWithCause("phone", ErrPhoneOnlyForCouriers)
	}
	a.role = role
	a.phone = phone
	return nil
}

func (a *Actor) setCode(code AccessCode) error {
	if code.IsZero() {
		return errs.NewValueIsRequiredError("code")
	}
	a.code = code
	return nil
}

func (a *Actor) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	a.name = name
	return nil
}
