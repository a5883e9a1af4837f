package ports

import (
	"context"

	"activation/internal/core/domain/model/credential"
)

// CredentialRepository reads provider credential templates. The lifecycle
// never writes them; Add exists for the template management layer and tests.
type CredentialRepository interface {
	Add(ctx context.Context, c *credential.Credential) error

	// Get returns the template or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (*credential.Credential, error)
}
