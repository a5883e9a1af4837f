package commands

import (
	"errors"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/errs"
	"activation/internal/pkg/guard"
)

// MaxOrdersPerBatch bounds both bulk creation and bulk deletion.
const MaxOrdersPerBatch = 1000

var ErrDeleteOrdersCommandIsNotConstructed = errors.New(
	"DeleteOrdersCommand must be created via NewDeleteOrdersCommand constructor",
)

// DeleteOrdersCommand removes orders regardless of their state. Duplicated
// ids are collapsed.
type DeleteOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrdersCommand(orderIDs []kernel.UUID) (DeleteOrdersCommand, error) {
	cmd := DeleteOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return DeleteOrdersCommand{}, err
	}
	return cmd, nil
}

func (c DeleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrdersCommandIsNotConstructed)
}

func (c DeleteOrdersCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *DeleteOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	if len(orderIDs) > MaxOrdersPerBatch {
		return errs.NewValueIsOutOfRangeError("orderIDs", len(orderIDs), 1, MaxOrdersPerBatch)
	}

	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	unique := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	c.orderIDs = unique
	return nil
}
