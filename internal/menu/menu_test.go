package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemStatus(t *testing.T) {
	got, err := ParseItemStatus("Available")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, got)

	got, err = ParseItemStatus("Out of Stock")
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfStock, got)

	for _, raw := range []string{"", "available", "Sold Out"} {
		_, err := ParseItemStatus(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestItemAvailable(t *testing.T) {
	assert.True(t, Item{Status: string(StatusAvailable)}.Available())
	assert.False(t, Item{Status: string(StatusOutOfStock)}.Available())
	assert.False(t, Item{Status: ""}.Available())
}
