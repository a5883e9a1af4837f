package commands

import (
	"context"
	"log/slog"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
)

// PollCodeResult mirrors what the activation page renders.
type PollCodeResult struct {
	Found   bool
	Code    string
	Expired bool
	Stage   order.Stage
}

// PollCodeCommandHandler asks the provider for the code of the current lease.
//
// Provider failures are reported as "not found yet": pollers call again on
// their own schedule, and a flaky provider must not break the page. A stored
// code is returned without any provider call, and an expired window is
// reported without one either.
type PollCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	provider   ports.ProviderClient
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewPollCodeCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.ProviderClient,
	clock kernel.Clock,
	logger *slog.Logger,
) PollCodeCommandHandler {
	return PollCodeCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		clock:      clock,
		logger:     logger.With("component", "poll_code_handler"),
	}
}

func (h PollCodeCommandHandler) Handle(ctx context.Context, cmd PollCodeCommand) (PollCodeResult, error) {
	if err := cmd.Validate(); err != nil {
		return PollCodeResult{}, err
	}

	uow := h.uowFactory.Create()
	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return PollCodeResult{}, err
	}

	now := h.clock.Now()
	if stage := o.Stage(now); stage != order.StageAwaitingCode {
		return resultFor(o, stage), nil
	}

	cred, err := loadCredential(ctx, uow, o.CredentialID())
	if err != nil {
		return PollCodeResult{}, err
	}

	code, err := h.provider.CheckCode(ctx, cred, o.ExternalID())
	if err != nil {
		h.logger.WarnContext(ctx, "Code check failed, reporting not found",
			"order_id", o.ID().String(), "external_id", o.ExternalID(), "error", err)
		return PollCodeResult{Stage: order.StageAwaitingCode}, nil
	}
	if code == "" {
		return PollCodeResult{Stage: order.StageAwaitingCode}, nil
	}

	if err = o.ReceiveCode(code); err != nil {
		return PollCodeResult{}, err
	}

	err = orders.CompareAndSet(ctx, o)
	if isConflict(err) {
		// First writer wins: report whatever is stored now, never overwrite it.
		current, getErr := orders.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return PollCodeResult{}, getErr
		}
		return resultFor(current, current.Stage(now)), nil
	}
	if err != nil {
		return PollCodeResult{}, err
	}

	h.logger.InfoContext(ctx, "Verification code received", "order_id", o.ID().String())
	return resultFor(o, order.StageWithCode), nil
}

func resultFor(o *order.Order, stage order.Stage) PollCodeResult {
	switch stage {
	case order.StageWithCode:
		return PollCodeResult{Found: true, Code: o.VerificationCode(), Stage: stage}
	case order.StageExpired:
		return PollCodeResult{Expired: true, Stage: stage}
	default:
		return PollCodeResult{Stage: stage}
	}
}
