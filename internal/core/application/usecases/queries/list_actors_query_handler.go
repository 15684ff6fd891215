package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/actor"

	"github.com/jmoiron/sqlx"
)

type ListActorsQueryHandler struct {
	db *sqlx.DB
}

func NewListActorsQueryHandler(db *sqlx.DB) ListActorsQueryHandler {
	return ListActorsQueryHandler{db: db}
}

// Handle lists actors by role then name. Codes are masked before they leave the handler.
func (h ListActorsQueryHandler) Handle(ctx context.Context, query ListActorsQuery) ([]ActorResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actors := make([]ActorResponse, 0)
	err := h.db.SelectContext(ctx, &actors, `
		SELECT role, code, name, phone, is_active, created_at
		FROM actors
		WHERE $1::text = '' OR role = $1
		ORDER BY role, name
	`, query.Role().String())
	if err != nil {
		return nil, err
	}

	for i := range actors {
		actors[i].MaskedCode = actor.Mask(actors[i].MaskedCode)
		actors[i].CreatedAt = utc(actors[i].CreatedAt)
	}
	return actors, nil
}
