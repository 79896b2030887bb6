package reservationrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockTimeoutStatement(t *testing.T) {
	testCases := []struct {
		name string
		wait time.Duration
		want string
	}{
		{"sub-millisecond rounds up", 500 * time.Microsecond, "SET LOCAL lock_timeout = '1ms'"},
		{"fraction rounds up", 1500 * time.Microsecond, "SET LOCAL lock_timeout = '2ms'"},
		{"whole milliseconds kept", 3 * time.Second, "SET LOCAL lock_timeout = '3000ms'"},
		{"zero never disables the timeout", 0, "SET LOCAL lock_timeout = '1ms'"},
		{"negative never disables the timeout", -time.Second, "SET LOCAL lock_timeout = '1ms'"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lockTimeoutStatement(tc.wait))
		})
	}
}
