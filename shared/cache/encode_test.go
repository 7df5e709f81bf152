package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	raw, err := encode("42")
	require.NoError(t, err)
	assert.Equal(t, []byte("42"), raw)

	raw, err = encode(map[string]int{"total_rooms": 10})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_rooms":10}`, string(raw))

	_, err = encode(make(chan int))
	require.Error(t, err)
}

func TestIsMiss(t *testing.T) {
	assert.True(t, IsMiss(Nil))
	assert.True(t, IsMiss(fmt.Errorf("failed to get cache value: %w", Nil)))
	assert.False(t, IsMiss(errors.New("connection refused")))
}

func TestLeaseKey(t *testing.T) {
	key := LeaseKey("booking:get:b1")

	assert.Equal(t, "booking:get:b1:lease", key)
	assert.NotEqual(t, "booking:get:b1", key)
}
