package commands

import (
	"errors"
	"time"

	"orderdesk/internal/pkg/guard"
)

var ErrPurgeExpiredSessionsCommandIsNotConstructed = errors.New(
	"PurgeExpiredSessionsCommand must be created via NewPurgeExpiredSessionsCommand constructor",
)

// PurgeExpiredSessionsCommand removes every binding that lapsed before Now.
type PurgeExpiredSessionsCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewPurgeExpiredSessionsCommand(now time.Time) PurgeExpiredSessionsCommand {
	return PurgeExpiredSessionsCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}
}

func (c PurgeExpiredSessionsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredSessionsCommandIsNotConstructed)
}

func (c PurgeExpiredSessionsCommand) Now() time.Time {
	return c.now
}
