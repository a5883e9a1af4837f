package credentialrepo

import (
	"context"
	"errors"

	"activation/internal/core/domain/model/credential"
	"activation/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCredentialRepository struct {
	db *gorm.DB
}

func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// Add stores a template under its own id.
func (r *GormCredentialRepository) Add(ctx context.Context, c *credential.Credential) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCredentialRepository) Get(ctx context.Context, id int64) (*credential.Credential, error) {
	var dto CredentialDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("credential", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
