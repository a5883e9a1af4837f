package commands

import (
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/guard"
)

var ErrPollCodeCommandIsNotConstructed = errors.New(
	"PollCodeCommand must be created via NewPollCodeCommand constructor",
)

// PollCodeCommand checks whether the code for the current lease has arrived.
type PollCodeCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPollCodeCommand(orderID kernel.UUID) (PollCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PollCodeCommand{}, err
	}

	return PollCodeCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c PollCodeCommand) Validate() error {
	return c.guard.Validate(ErrPollCodeCommandIsNotConstructed)
}

func (c PollCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}
