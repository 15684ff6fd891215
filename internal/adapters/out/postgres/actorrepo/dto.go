package actorrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActorDTO is the row shape of the actors table.
type ActorDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"size:10;uniqueIndex:actors_role_code_key"`
	Code      string    `gorm:"size:50;uniqueIndex:actors_role_code_key"`
	Name      string    `gorm:"size:100"`
	Phone     string    `gorm:"size:20"`
	IsActive  bool
	CreatedAt time.Time
}

func (ActorDTO) TableName() string {
	return "actors"
}

func fromDomain(a *actor.Actor) ActorDTO {
	return ActorDTO{
		ID:        a.ID().Bytes(),
		Role:      a.Role().String(),
		Code:      a.Code().Reveal(),
		Name:      a.Name(),
		Phone:     a.Phone(),
		IsActive:  a.IsActive(),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto ActorDTO) (*actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := actor.NewAccessCode(dto.Code)
	if err != nil {
		return nil, err
	}

	return actor.RestoreActor(
		id,
		actor.Role(dto.Role),
		code,
		dto.Name,
		dto.Phone,
		dto.IsActive,
		dto.CreatedAt.UTC(),
	)
}
