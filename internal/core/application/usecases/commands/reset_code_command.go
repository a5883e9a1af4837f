package commands

import (
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/guard"
)

var ErrResetCodeCommandIsNotConstructed = errors.New(
	"ResetCodeCommand must be created via NewResetCodeCommand constructor",
)

// ResetCodeCommand clears a received code so that the caller can poll again
// without spending a replacement.
type ResetCodeCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResetCodeCommand(orderID kernel.UUID) (ResetCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ResetCodeCommand{}, err
	}

	return ResetCodeCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResetCodeCommand) Validate() error {
	return c.guard.Validate(ErrResetCodeCommandIsNotConstructed)
}

func (c ResetCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}
