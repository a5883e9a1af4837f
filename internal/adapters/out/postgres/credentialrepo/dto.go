// Package credentialrepo persists provider credential templates.
package credentialrepo

import (
	"activation/internal/core/domain/model/credential"
)

// CredentialDTO is one row of the credentials table. The token is stored as
// issued by the provider; access to the table is the owner's concern.
type CredentialDTO struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	TemplateName       string `gorm:"size:128"`
	Token              string `gorm:"not null"`
	Country            string `gorm:"size:64;not null"`
	Operator           string `gorm:"size:64;not null"`
	Product            string `gorm:"size:64;not null"`
	CountryDisplayName string `gorm:"size:128"`
	CountryAreaCode    string `gorm:"size:16"`
}

func (CredentialDTO) TableName() string {
	return "credentials"
}

func fromDomain(c *credential.Credential) CredentialDTO {
	return CredentialDTO{
		ID:                 c.ID(),
		TemplateName:       c.TemplateName(),
		Token:              c.Token(),
		Country:            c.Country(),
		Operator:           c.Operator(),
		Product:            c.Product(),
		CountryDisplayName: c.CountryDisplayName(),
		CountryAreaCode:    c.CountryAreaCode(),
	}
}

func toDomain(dto CredentialDTO) (*credential.Credential, error) {
	return credential.NewCredential(
		dto.ID,
		dto.TemplateName,
		dto.Token,
		dto.Country,
		dto.Operator,
		dto.Product,
		credential.Display{
			CountryDisplayName: dto.CountryDisplayName,
			CountryAreaCode:    dto.CountryAreaCode,
		},
	)
}
