package commands

import (
	"context"
	"log/slog"
)

// ResetCodeCommandHandler clears the stored code of an order. It touches
// nothing else: the replacement counter, the lease and the window stay.
type ResetCodeCommandHandler struct {
	uowFactory  OrderUoWFactory
	logger      *slog.Logger
	maxAttempts int
}

func NewResetCodeCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ResetCodeCommandHandler {
	return ResetCodeCommandHandler{
		uowFactory:  uowFactory,
		logger:      logger.With("component", "reset_code_handler"),
		maxAttempts: maxConflictAttempts,
	}
}

func (h ResetCodeCommandHandler) Handle(ctx context.Context, cmd ResetCodeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := h.attempt(ctx, cmd)
		if isConflict(err) && attempt < h.maxAttempts {
			continue
		}
		return err
	}
}

func (h ResetCodeCommandHandler) attempt(ctx context.Context, cmd ResetCodeCommand) error {
	orders := h.uowFactory.Create().OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.HasCode() {
		return nil
	}

	o.ResetCode()
	if err = orders.CompareAndSet(ctx, o); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Verification code reset", "order_id", o.ID().String())
	return nil
}
