// Package actorrepo persists chefs and couriers.
package actorrepo

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormActorRepository struct {
	db *gorm.DB
}

func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

func (r *GormActorRepository) Add(ctx context.Context, aggregate *actor.Actor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update rewrites the mutable columns. Role and code identify the actor and never change.
func (r *GormActorRepository) Update(ctx context.Context, aggregate *actor.Actor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ActorDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":      aggregate.Name(),
			"phone":     aggregate.Phone(),
			"is_active": aggregate.IsActive(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("actor", aggregate.ID().String())
	}
	return nil
}

func (r *GormActorRepository) GetByCode(ctx context.Context, role actor.Role, code actor.AccessCode) (*actor.Actor, error) {
	var dto ActorDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND code = ?", role.String(), code.Reveal()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Masked: the message may reach logs.
			return nil, errs.NewObjectNotFoundError(role.String(), code.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormActorRepository) IsActive(ctx context.Context, role actor.Role, code actor.AccessCode) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ActorDTO{}).
		Where("role = ? AND code = ? AND is_active", role.String(), code.Reveal()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
