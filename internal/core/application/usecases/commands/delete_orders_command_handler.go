package commands

import (
	"context"
	"log/slog"
)

type DeleteOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewDeleteOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) DeleteOrdersCommandHandler {
	return DeleteOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "delete_orders_handler"),
	}
}

// Handle deletes the orders in one transaction and returns how many existed.
// Unknown ids are ignored.
func (h DeleteOrdersCommandHandler) Handle(ctx context.Context, cmd DeleteOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().Delete(ctx, cmd.OrderIDs())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "Orders deleted", "requested", len(cmd.OrderIDs()), "deleted", deleted)
	return deleted, nil
}
