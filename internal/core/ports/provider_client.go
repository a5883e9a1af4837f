package ports

import (
	"context"
	"errors"

	"activation/internal/core/domain/model/credential"
	"activation/internal/core/domain/model/order"
)

// ErrProviderUnavailable wraps every provider failure: transport errors,
// timeouts, non-success statuses and malformed bodies. No state was changed
// when it is returned, so the caller may retry later.
var ErrProviderUnavailable = errors.New("sms provider unavailable")

// ProviderClient performs the two outbound provider calls. Implementations
// apply their own deadline to each call and never retry.
type ProviderClient interface {
	// AcquireNumber rents a phone number for the credential's country/operator/product.
	AcquireNumber(ctx context.Context, c *credential.Credential) (order.Lease, error)

	// CheckCode returns the first code received for the lease, or "" when none arrived yet.
	CheckCode(ctx context.Context, c *credential.Credential, externalID string) (string, error)
}
