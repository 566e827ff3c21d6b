package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRemoved, true},
		{StatusAccepted, StatusRemoved, false},
		{StatusAccepted, StatusPending, false},
		{StatusRemoved, StatusAccepted, false},
		{StatusRemoved, StatusPending, false},

		// re-issuing the current status is allowed
		{StatusPending, StatusPending, true},
		{StatusAccepted, StatusAccepted, true},
		{StatusRemoved, StatusRemoved, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	for _, want := range []Status{StatusPending, StatusAccepted, StatusRemoved} {
		got, err := ParseStatus(string(want))
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "pending", "Cancelled", "ACCEPTED"} {
		_, err := ParseStatus(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
