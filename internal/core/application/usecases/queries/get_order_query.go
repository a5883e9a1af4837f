// Package queries holds the read side: views assembled straight from the
// database without loading aggregates.
package queries

import (
	"errors"
	"time"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads what the activation page shows for one link.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse never carries the verification code; it is only
// released through polling.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	Status      order.Status
	Stage       order.Stage
	PhoneNumber string
	// PhoneRegion is the ISO 3166 region of PhoneNumber, empty when unknown.
	PhoneRegion           string
	ReplacementCount      int
	RemainingReplacements int
	FirstUsedAt           *time.Time
	ExpiresAt             *time.Time
	HasCode               bool

	TemplateName       string
	Product            string
	CountryDisplayName string
	CountryAreaCode    string
}
