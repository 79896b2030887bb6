package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWindowIsNotConstructed = errors.New("window is not constructed")

// window mirrors how commands and value objects embed the guard.
type window struct {
	fromHour int
	toHour   int
	guard    guard.ConstructorGuard
}

func newWindow(fromHour, toHour int) window {
	return window{fromHour: fromHour, toHour: toHour, guard: guard.NewConstructorGuard()}
}

func (w window) Validate() error {
	return w.guard.Validate(errWindowIsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		guard   guard.ConstructorGuard
		supply  error
		wantErr error
	}{
		{"constructed ignores supplied error", guard.NewConstructorGuard(), errWindowIsNotConstructed, nil},
		{"constructed with nil error", guard.NewConstructorGuard(), nil, nil},
		{"zero value returns supplied error", guard.ConstructorGuard{}, errWindowIsNotConstructed, errWindowIsNotConstructed},
		{"zero value falls back to default", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.guard.Validate(tc.supply)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	t.Run("built by constructor", func(t *testing.T) {
		w := newWindow(9, 12)

		require.NoError(t, w.Validate())
		assert.Equal(t, 9, w.fromHour)
	})

	t.Run("zero value", func(t *testing.T) {
		require.ErrorIs(t, window{}.Validate(), errWindowIsNotConstructed)
	})

	t.Run("literal without constructor", func(t *testing.T) {
		w := window{fromHour: 9, toHour: 12}

		require.ErrorIs(t, w.Validate(), errWindowIsNotConstructed)
	})

	t.Run("copies keep the mark", func(t *testing.T) {
		original := newWindow(9, 12)
		moved := original
		moved.toHour = 18

		require.NoError(t, moved.Validate())
		require.NoError(t, original.Validate())
	})
}
