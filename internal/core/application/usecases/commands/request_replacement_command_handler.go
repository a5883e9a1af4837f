package commands

import (
	"context"
	"log/slog"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/ports"
)

type RequestReplacementResult struct {
	PhoneNumber      string
	ReplacementCount int
}

// RequestReplacementCommandHandler swaps the lease of an active order.
//
// Policy violations (code already received, limit reached) are returned as
// order.ErrForbidden before any provider call. When two replacements race,
// the loser re-reads the order and decides again, so the counter can never
// pass order.MaxReplacements.
type RequestReplacementCommandHandler struct {
	uowFactory  OrderUoWFactory
	provider    ports.ProviderClient
	clock       kernel.Clock
	logger      *slog.Logger
	maxAttempts int
}

func NewRequestReplacementCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.ProviderClient,
	clock kernel.Clock,
	logger *slog.Logger,
) RequestReplacementCommandHandler {
	return RequestReplacementCommandHandler{
		uowFactory:  uowFactory,
		provider:    provider,
		clock:       clock,
		logger:      logger.With("component", "request_replacement_handler"),
		maxAttempts: maxConflictAttempts,
	}
}

func (h RequestReplacementCommandHandler) Handle(
	ctx context.Context,
	cmd RequestReplacementCommand,
) (RequestReplacementResult, error) {
	if err := cmd.Validate(); err != nil {
		return RequestReplacementResult{}, err
	}

	for attempt := 1; ; attempt++ {
		res, err := h.attempt(ctx, cmd)
		if isConflict(err) && attempt < h.maxAttempts {
			h.logger.InfoContext(ctx, "Replacement lost a concurrent update, retrying",
				"order_id", cmd.OrderID().String(), "attempt", attempt)
			continue
		}
		return res, err
	}
}

func (h RequestReplacementCommandHandler) attempt(
	ctx context.Context,
	cmd RequestReplacementCommand,
) (RequestReplacementResult, error) {
	uow := h.uowFactory.Create()
	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return RequestReplacementResult{}, err
	}
	if err = o.CanReplace(); err != nil {
		return RequestReplacementResult{}, err
	}

	cred, err := loadCredential(ctx, uow, o.CredentialID())
	if err != nil {
		return RequestReplacementResult{}, err
	}

	lease, err := h.provider.AcquireNumber(ctx, cred)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to acquire replacement number", "order_id", o.ID().String(), "error", err)
		return RequestReplacementResult{}, providerFailure(err)
	}

	if err = o.Replace(lease, h.clock.Now()); err != nil {
		return RequestReplacementResult{}, err
	}
	if err = orders.CompareAndSet(ctx, o); err != nil {
		if isConflict(err) {
			h.logger.WarnContext(ctx, "Discarding phone number leased by a losing replacement",
				"order_id", o.ID().String(),
				"external_id", lease.ExternalID(),
			)
		}
		return RequestReplacementResult{}, err
	}

	h.logger.InfoContext(ctx, "Phone number replaced",
		"order_id", o.ID().String(),
		"external_id", o.ExternalID(),
		"replacement_count", o.ReplacementCount(),
	)
	return RequestReplacementResult{PhoneNumber: o.PhoneNumber(), ReplacementCount: o.ReplacementCount()}, nil
}
