package commands_test

import (
	"log/slog"
	"testing"

	"activation/internal/core/application/usecases/commands"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResetCodeCommandHandler_Handle_ClearsOnlyTheCode(t *testing.T) {
	f := newFixture(t)
	id := f.activeOrder(t, f.now, 2, "4821")
	before := f.store.snapshot(id)

	h := commands.NewResetCodeCommandHandler(f.factory, slog.Default())
	cmd, _ := commands.NewResetCodeCommand(id)
	require.NoError(t, h.Handle(t.Context(), cmd))

	after := f.store.snapshot(id)
	assert.Empty(t, after.VerificationCode)
	assert.Equal(t, before.ReplacementCount, after.ReplacementCount)
	assert.Equal(t, before.PhoneNumber, after.PhoneNumber)
	assert.Equal(t, before.FirstUsedAt, after.FirstUsedAt)
}

func TestResetCodeCommandHandler_Handle_NoCodeIsNoop(t *testing.T) {
	f := newFixture(t)
	id := f.activeOrder(t, f.now, 0, "")

	h := commands.NewResetCodeCommandHandler(f.factory, slog.Default())
	cmd, _ := commands.NewResetCodeCommand(id)
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Zero(t, f.store.writeCount())
}

func TestResetCodeCommandHandler_Handle_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	h := commands.NewResetCodeCommandHandler(f.factory, slog.Default())
	cmd, _ := commands.NewResetCodeCommand(kernel.NewUUID())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestResetCodeCommandHandler_Handle_ThenPollNeedsFreshCode(t *testing.T) {
	f := newFixture(t)
	id := f.activeOrder(t, f.now, 0, "4821")

	reset := commands.NewResetCodeCommandHandler(f.factory, slog.Default())
	resetCmd, _ := commands.NewResetCodeCommand(id)
	require.NoError(t, reset.Handle(t.Context(), resetCmd))

	f.provider.On("CheckCode", mock.Anything, f.cred, "100").Return("", nil).Once()
	poll := commands.NewPollCodeCommandHandler(f.factory, f.provider, f.clock(), slog.Default())
	pollCmd, _ := commands.NewPollCodeCommand(id)

	res, err := poll.Handle(t.Context(), pollCmd)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Code)
}

// Once the code is cleared a replacement is allowed again, unless the counter is spent.
func TestResetCodeCommandHandler_Handle_UnblocksReplacement(t *testing.T) {
	f := newFixture(t)
	id := f.activeOrder(t, f.now, 1, "4821")

	reset := commands.NewResetCodeCommandHandler(f.factory, slog.Default())
	resetCmd, _ := commands.NewResetCodeCommand(id)
	require.NoError(t, reset.Handle(t.Context(), resetCmd))

	f.provider.On("AcquireNumber", mock.Anything, f.cred).
		Return(mustLease(t, "79997778899", "321"), nil).Once()
	replace := commands.NewRequestReplacementCommandHandler(f.factory, f.provider, f.clock(), slog.Default())
	replaceCmd, _ := commands.NewRequestReplacementCommand(id)

	res, err := replace.Handle(t.Context(), replaceCmd)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ReplacementCount)
}
