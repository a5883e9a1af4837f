package commands

import (
	"context"
	"log/slog"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
)

type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "create_orders_handler"),
	}
}

// Handle checks that the credential exists and stores Count new orders in one
// transaction. Either every order is created or none is.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := loadCredential(ctx, uow, cmd.CredentialID()); err != nil {
		return nil, err
	}

	orders := uow.OrderRepository()
	ids := make([]kernel.UUID, 0, cmd.Count())
	for range cmd.Count() {
		o, err := order.NewOrder(kernel.NewUUID(), cmd.CredentialID())
		if err != nil {
			return nil, err
		}
		if err = orders.Add(ctx, o); err != nil {
			return nil, err
		}
		ids = append(ids, o.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Orders created", "credential_id", cmd.CredentialID(), "count", len(ids))
	return ids, nil
}
