package orderrepo

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its items in one statement batch.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update writes status and courier reference if the stored version still
// matches the aggregate, and bumps the version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"status":      aggregate.Status().String(),
			"accepted_by": aggregate.AcceptedBy(),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

// GetByPublicCodeForUpdate loads the order with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetByPublicCodeForUpdate(ctx context.Context, code order.PublicCode) (*order.Order, error) {
	return r.first(ctx, true, "public_code = ?", code.String())
}

func (r *GormOrderRepository) GetBySecretCode(ctx context.Context, code order.SecretCode) (*order.Order, error) {
	return r.first(ctx, false, "secret_code = ?", code.String())
}

func (r *GormOrderRepository) ExistsPublicCode(ctx context.Context, code order.PublicCode) (bool, error) {
	return r.exists(ctx, "public_code = ?", code.String())
}

func (r *GormOrderRepository) ExistsSecretCode(ctx context.Context, code order.SecretCode) (bool, error) {
	return r.exists(ctx, "secret_code = ?", code.String())
}

func (r *GormOrderRepository) first(ctx context.Context, lock bool, query string, arg string) (*order.Order, error) {
	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	err := tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", arg)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
