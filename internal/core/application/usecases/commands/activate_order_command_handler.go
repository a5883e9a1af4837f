package commands

import (
	"context"
	"log/slog"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
)

// ActivateOrderResult is the number the link currently shows.
type ActivateOrderResult struct {
	PhoneNumber      string
	ReplacementCount int
	// AlreadyActive is true when no provider call was made because the order
	// already held a lease (page refresh, concurrent open).
	AlreadyActive bool
}

// ActivateOrderCommandHandler moves an order from New to Active.
//
// Example:
//
//	cmd, _ := NewActivateOrderCommand(orderID)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown link
//	case errors.Is(err, ports.ErrProviderUnavailable):
//	    // nothing stored, ask the user to reload
//	}
type ActivateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	provider   ports.ProviderClient
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewActivateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.ProviderClient,
	clock kernel.Clock,
	logger *slog.Logger,
) ActivateOrderCommandHandler {
	return ActivateOrderCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		clock:      clock,
		logger:     logger.With("component", "activate_order_handler"),
	}
}

// Handle returns the existing number for an active order without calling the
// provider. For a new order it leases a number and stores it; a provider
// failure leaves the order New.
func (h ActivateOrderCommandHandler) Handle(ctx context.Context, cmd ActivateOrderCommand) (ActivateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ActivateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return ActivateOrderResult{}, err
	}
	if o.Status() == order.Active {
		return activeResult(o), nil
	}

	cred, err := loadCredential(ctx, uow, o.CredentialID())
	if err != nil {
		return ActivateOrderResult{}, err
	}

	lease, err := h.provider.AcquireNumber(ctx, cred)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to acquire phone number", "order_id", o.ID().String(), "error", err)
		return ActivateOrderResult{}, providerFailure(err)
	}

	if err = o.Activate(lease, h.clock.Now()); err != nil {
		return ActivateOrderResult{}, err
	}

	err = orders.CompareAndSet(ctx, o)
	if isConflict(err) {
		// Another request activated the link first; its number is the one the user sees.
		current, getErr := orders.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return ActivateOrderResult{}, getErr
		}
		if current.Status() == order.Active {
			h.logger.WarnContext(ctx, "Discarding phone number leased by a losing activation",
				"order_id", o.ID().String(),
				"external_id", lease.ExternalID(),
			)
			return activeResult(current), nil
		}
		return ActivateOrderResult{}, err
	}
	if err != nil {
		return ActivateOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "Order activated", "order_id", o.ID().String(), "external_id", o.ExternalID())
	return ActivateOrderResult{PhoneNumber: o.PhoneNumber(), ReplacementCount: o.ReplacementCount()}, nil
}

func activeResult(o *order.Order) ActivateOrderResult {
	return ActivateOrderResult{
		PhoneNumber:      o.PhoneNumber(),
		ReplacementCount: o.ReplacementCount(),
		AlreadyActive:    true,
	}
}
