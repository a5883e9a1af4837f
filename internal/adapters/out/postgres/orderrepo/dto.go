// Package orderrepo maps the order aggregate onto the orders table.
package orderrepo

import (
	"time"

	"activation/internal/adapters/out/postgres/credentialrepo"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Version is the compare-and-set
// token; every successful write increments it. Deleting a credential removes
// its orders through the foreign key.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CredentialID     int64     `gorm:"not null;index"`
	Status           int       `gorm:"not null;index"`
	PhoneNumber      *string   `gorm:"size:32"`
	ExternalID       *string   `gorm:"size:64"`
	FirstUsedAt      *time.Time
	ReplacementCount int     `gorm:"not null"`
	VerificationCode *string `gorm:"size:32"`
	Version          int64   `gorm:"not null"`

	Credential *credentialrepo.CredentialDTO `gorm:"foreignKey:CredentialID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var firstUsedAt *time.Time
	if s.FirstUsedAt != nil {
		t := s.FirstUsedAt.UTC()
		firstUsedAt = &t
	}

	return OrderDTO{
		ID:               s.ID.Bytes(),
		CredentialID:     s.CredentialID,
		Status:           int(s.Status),
		PhoneNumber:      nullable(s.PhoneNumber),
		ExternalID:       nullable(s.ExternalID),
		FirstUsedAt:      firstUsedAt,
		ReplacementCount: s.ReplacementCount,
		VerificationCode: nullable(s.VerificationCode),
		Version:          s.Version,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var firstUsedAt *time.Time
	if dto.FirstUsedAt != nil {
		t := dto.FirstUsedAt.UTC()
		firstUsedAt = &t
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		CredentialID:     dto.CredentialID,
		Status:           order.Status(dto.Status),
		PhoneNumber:      deref(dto.PhoneNumber),
		ExternalID:       deref(dto.ExternalID),
		FirstUsedAt:      firstUsedAt,
		ReplacementCount: dto.ReplacementCount,
		VerificationCode: deref(dto.VerificationCode),
		Version:          dto.Version,
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
