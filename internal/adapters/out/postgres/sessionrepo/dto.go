package sessionrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/session"

	"github.com/google/uuid"
)

type SessionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"size:10"`
	ActorCode string    `gorm:"size:50"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func (SessionDTO) TableName() string {
	return "sessions"
}

func fromDomain(s *session.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID().Bytes(),
		Role:      s.Role().String(),
		ActorCode: s.ActorCode().Reveal(),
		CreatedAt: s.CreatedAt(),
		ExpiresAt: s.ExpiresAt(),
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	code, err := actor.NewAccessCode(dto.ActorCode)
	if err != nil {
		return nil, err
	}
	return session.RestoreSession(id, actor.Role(dto.Role), code, dto.CreatedAt.UTC(), dto.ExpiresAt.UTC())
}
