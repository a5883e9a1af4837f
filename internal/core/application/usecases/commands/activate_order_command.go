package commands

import (
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/guard"
)

var ErrActivateOrderCommandIsNotConstructed = errors.New(
	"ActivateOrderCommand must be created via NewActivateOrderCommand constructor",
)

// ActivateOrderCommand opens an activation link. The first call leases a phone
// number; later calls return the number already held.
type ActivateOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewActivateOrderCommand(orderID kernel.UUID) (ActivateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ActivateOrderCommand{}, err
	}

	return ActivateOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ActivateOrderCommand) Validate() error {
	return c.guard.Validate(ErrActivateOrderCommandIsNotConstructed)
}

func (c ActivateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
