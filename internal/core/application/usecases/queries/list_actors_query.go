package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/pkg/guard"
)

var ErrListActorsQueryIsNotConstructed = errors.New(
	"ListActorsQuery must be created via NewListActorsQuery constructor",
)

// ListActorsQuery backs the administrator listing. An empty role lists everyone.
type ListActorsQuery struct {
	role  actor.Role
	guard guard.ConstructorGuard
}

func NewListActorsQuery(rawRole string) (ListActorsQuery, error) {
	var role actor.Role
	if rawRole != "" {
		parsed, err := actor.ParseRole(rawRole)
		if err != nil {
			return ListActorsQuery{}, err
		}
		role = parsed
	}
	return ListActorsQuery{role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q ListActorsQuery) Validate() error {
	return q.guard.Validate(ErrListActorsQueryIsNotConstructed)
}

func (q ListActorsQuery) Role() actor.Role {
	return q.role
}

// ActorResponse carries a masked code only.
type ActorResponse struct {
	Role       string    `db:"role"`
	MaskedCode string    `db:"code"`
	Name       string    `db:"name"`
	Phone      string    `db:"phone"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}
