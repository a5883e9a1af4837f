package commands

import (
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/guard"
)

var ErrRequestReplacementCommandIsNotConstructed = errors.New(
	"RequestReplacementCommand must be created via NewRequestReplacementCommand constructor",
)

// RequestReplacementCommand asks for a different phone number on an active order.
type RequestReplacementCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestReplacementCommand(orderID kernel.UUID) (RequestReplacementCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestReplacementCommand{}, err
	}

	return RequestReplacementCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RequestReplacementCommand) Validate() error {
	return c.guard.Validate(ErrRequestReplacementCommandIsNotConstructed)
}

func (c RequestReplacementCommand) OrderID() kernel.UUID {
	return c.orderID
}
