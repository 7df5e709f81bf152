package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"
	"hotel/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preserve(t *testing.T) {
	t.Helper()

	original, level, format := log.Logger, zerolog.GlobalLevel(), zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = format
	})
}

func TestInitLogger(t *testing.T) {
	preserve(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking store unreachable"))

	assert.Contains(t, buf.String(), "booking store unreachable")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{logLevel: "trace", expected: zerolog.TraceLevel},
		{logLevel: "debug", expected: zerolog.DebugLevel},
		{logLevel: "info", expected: zerolog.InfoLevel},
		{logLevel: "warn", expected: zerolog.WarnLevel},
		{logLevel: "error", expected: zerolog.ErrorLevel},
		{logLevel: "disabled", expected: zerolog.Disabled},
		{logLevel: "invalid_level", expected: zerolog.TraceLevel},
		// ParseLevel("") is NoLevel without an error
		{logLevel: "", expected: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			preserve(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestNew_TagsService(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "hotel")
	l.Info().Str("booking_id", "b1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "hotel", line["service"])
	assert.Equal(t, "b1", line["booking_id"])
	assert.Equal(t, "booking created", line["message"])
	assert.Contains(t, line, "time")
}

func TestConfigure_Development(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "warn"

	logger.Configure(cfg)

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
