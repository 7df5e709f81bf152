package model_test

import (
	"testing"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, status := range model.Statuses {
		assert.True(t, status.Valid(), status)
	}

	assert.False(t, model.Status("").Valid())
	assert.False(t, model.Status("archived").Valid())
	assert.False(t, model.Status("Pending").Valid())
}

func TestTransitionIsPermissive(t *testing.T) {
	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			next, err := model.Transition(from, to)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, next)
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	next, err := model.Transition(model.StatusPending, "refunded")
	require.Error(t, err)
	assert.Equal(t, model.StatusPending, next)

	_, err = model.Transition("", model.StatusConfirmed)
	assert.Error(t, err)
}
