package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useZone(t *testing.T, name string) {
	t.Helper()

	previous := timezone.GetLocation().String()

	require.NoError(t, timezone.Init(name))
	t.Cleanup(func() { _ = timezone.Init(previous) })
}

func TestInit(t *testing.T) {
	useZone(t, "Asia/Jakarta")

	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())
}

func TestInit_EmptyIsUTC(t *testing.T) {
	useZone(t, "")

	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestInit_UnknownFallsBackToUTC(t *testing.T) {
	previous := timezone.GetLocation().String()
	t.Cleanup(func() { _ = timezone.Init(previous) })

	require.Error(t, timezone.Init("Mars/Olympus"))
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestParse_UsesAppZone(t *testing.T) {
	useZone(t, "Asia/Jakarta")

	parsed, err := timezone.Parse(time.DateOnly, "2025-03-01")
	require.NoError(t, err)

	// midnight in Jakarta is 17:00 UTC the day before
	assert.Equal(t, time.Date(2025, 2, 28, 17, 0, 0, 0, time.UTC), parsed.UTC())
}

func TestParse_Invalid(t *testing.T) {
	_, err := timezone.Parse(time.DateOnly, "01/03/2025")

	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	useZone(t, "Asia/Jakarta")

	instant := time.Date(2025, 2, 28, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-01", timezone.Format(instant, time.DateOnly))
	assert.Equal(t, "2025-03-01T03:00:00+07:00", timezone.Format(instant, time.RFC3339))
}
