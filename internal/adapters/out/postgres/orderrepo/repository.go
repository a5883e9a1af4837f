package orderrepo

import (
	"context"
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
	"activation/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on any gorm dialect.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order. The credential row must already exist.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSet is a single conditional UPDATE keyed on (id, version), so two
// writers that read the same version cannot both succeed.
func (r *GormOrderRepository) CompareAndSet(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":            dto.Status,
			"phone_number":      dto.PhoneNumber,
			"external_id":       dto.ExternalID,
			"first_used_at":     dto.FirstUsedAt,
			"replacement_count": dto.ReplacementCount,
			"verification_code": dto.VerificationCode,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return ports.ErrConcurrentModification
}

func (r *GormOrderRepository) Delete(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return 0, err
		}
		raw = append(raw, id.Bytes())
	}

	result := r.db.WithContext(ctx).Where("id IN ?", raw).Delete(&OrderDTO{})
	return result.RowsAffected, result.Error
}
