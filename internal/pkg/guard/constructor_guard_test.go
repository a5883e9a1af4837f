package guard_test

import (
	"errors"
	"testing"

	"activation/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("PollCodeCommand must be created via NewPollCodeCommand")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueType(t *testing.T) {
	type lease struct {
		phone string
		guard guard.ConstructorGuard
	}
	errLeaseNotConstructed := errors.New("lease must be created via newLease")
	newLease := func(phone string) lease {
		return lease{phone: phone, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newLease("79991234567").guard.Validate(errLeaseNotConstructed))
	require.ErrorIs(t, lease{phone: "79991234567"}.guard.Validate(errLeaseNotConstructed), errLeaseNotConstructed)
}
