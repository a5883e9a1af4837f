package queries

import (
	"errors"
	"fmt"
	"time"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/pkg/errs"
	"activation/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders for administration, optionally limited to one
// credential. Active orders come first, most recently used on top.
type ListOrdersQuery struct {
	credentialID int64

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. credentialID 0 lists every order.
func NewListOrdersQuery(credentialID int64) (ListOrdersQuery, error) {
	if credentialID < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"credentialID",
			fmt.Errorf("%d is negative", credentialID),
		)
	}
	return ListOrdersQuery{credentialID: credentialID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CredentialID is 0 when the query is not filtered.
func (q ListOrdersQuery) CredentialID() int64 {
	return q.credentialID
}

type ListOrdersQueryResponse struct {
	ID               kernel.UUID
	CredentialID     int64
	TemplateName     string
	Status           order.Status
	Stage            order.Stage
	PhoneNumber      string
	ReplacementCount int
	FirstUsedAt      *time.Time
}
