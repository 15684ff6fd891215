package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/session"
)

// SessionRepository stores browser bindings server-side.
type SessionRepository interface {
	Add(ctx context.Context, s *session.Session) error
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteExpired removes bindings that lapsed before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
