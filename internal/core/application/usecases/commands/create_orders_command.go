package commands

import (
	"errors"
	"fmt"

	"activation/internal/pkg/errs"
	"activation/internal/pkg/guard"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// CreateOrdersCommand issues a batch of fresh activation links bound to one
// provider credential.
//
// Example:
//
//	cmd, err := NewCreateOrdersCommand(credentialID, 50)
//	if err != nil {
//	    return fmt.Errorf("invalid batch: %w", err)
//	}
//	ids, err := handler.Handle(ctx, cmd)
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	credentialID int64
	count        int

	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(credentialID int64, count int) (CreateOrdersCommand, error) {
	cmd := CreateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCredentialID(credentialID),
		cmd.setCount(count),
	); err != nil {
		return CreateOrdersCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) CredentialID() int64 {
	return c.credentialID
}

func (c CreateOrdersCommand) Count() int {
	return c.count
}

func (c *CreateOrdersCommand) setCredentialID(credentialID int64) error {
	if credentialID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"credentialID",
			fmt.Errorf("%d is not greater than 0", credentialID),
		)
	}
	c.credentialID = credentialID
	return nil
}

func (c *CreateOrdersCommand) setCount(count int) error {
	if count < 1 || count > MaxOrdersPerBatch {
		return errs.NewValueIsOutOfRangeError("count", count, 1, MaxOrdersPerBatch)
	}
	c.count = count
	return nil
}
