package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per operation, so no database
// session is shared between concurrent requests.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repository access for one operation. Without Begin the
// repositories run each statement on the pooled connection; with Begin they
// share one transaction until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CredentialRepository() CredentialRepository
}
