package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level. Configure narrows it down.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches to JSON lines tagged with the app name outside development, then applies the log level.
func Configure(config *config.Config) {
	if config.Server.Env != constant.ServerEnvDevelopment && config.Server.Env != constant.Empty {
		log.Logger = New(os.Stdout, config.App.Name)
	}

	SetLogLevel(config)
}

// New returns a JSON logger writing to w.
func New(w io.Writer, service string) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp()
	if service != constant.Empty {
		logger = logger.Str("service", service)
	}

	return logger.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
