package postgres

import (
	"activation/internal/adapters/out/postgres/credentialrepo"
	"activation/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the credentials and orders tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&credentialrepo.CredentialDTO{}, &orderrepo.OrderDTO{})
}
