package commands

import (
	"context"
	"errors"
	"fmt"

	"activation/internal/core/domain/model/credential"
	"activation/internal/core/ports"
)

// maxConflictAttempts bounds the read-decide-write loop of handlers that
// retry after losing a compare-and-set race.
const maxConflictAttempts = 2

func loadCredential(ctx context.Context, uow OrderUoW, id int64) (*credential.Credential, error) {
	c, err := uow.CredentialRepository().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load credential %d: %w", id, err)
	}
	return c, nil
}

// providerFailure makes sure a provider error is classified as transient even
// when an implementation forgot to wrap it.
func providerFailure(err error) error {
	if errors.Is(err, ports.ErrProviderUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
}

func isConflict(err error) bool {
	return errors.Is(err, ports.ErrConcurrentModification)
}
