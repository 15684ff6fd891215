package session

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session binds an opaque browser token to exactly one actor. The binding is a
// hint only: the actor's active flag is re-read on every privileged call.
type Session struct {
	id        kernel.UUID
	role      actor.Role
	actorCode actor.AccessCode
	createdAt time.Time
	expiresAt time.Time

	isConstructed bool
}

// NewSession opens a binding valid for ttl starting at now.
func NewSession(id kernel.UUID, role actor.Role, code actor.AccessCode, now time.Time, ttl time.Duration) (*Session, error) {
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("session ttl", ttl, "1ns", "unbounded")
	}
	return RestoreSession(id, role, code, now, now.Add(ttl))
}

// RestoreSession rebuilds a binding loaded from storage.
func RestoreSession(id kernel.UUID, role actor.Role, code actor.AccessCode, createdAt, expiresAt time.Time) (*Session, error) {
	s := &Session{isConstructed: true}

	var codeErr error
	if code.IsZero() {
		codeErr = errs.NewValueIsRequiredError("actor_code")
	}
	if err := errors.Join(id.Validate(), role.Validate(), codeErr); err != nil {
		return nil, err
	}

	s.id = id
	s.role = role
	s.actorCode = code
	s.createdAt = createdAt
	s.expiresAt = expiresAt
	return s, nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) Role() actor.Role {
	return s.role
}

func (s *Session) ActorCode() actor.AccessCode {
	return s.actorCode
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// IsExpired reports whether the binding has lapsed at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}
