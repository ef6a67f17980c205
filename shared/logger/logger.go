package logger

import (
	"hotel/config"
	"hotel/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console writer until the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level. Outside development the output switches to JSON lines tagged with the app name.
func Configure(cfg *config.Config) {
	if env := cfg.Server.Env; env != "" && env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(os.Stdout).With().
			Timestamp().
			Str("app", cfg.App.Name).
			Str("env", env).
			Logger()
	}

	SetLogLevel(cfg)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Warn().Str("loglevel", cfg.Server.LogLevel).Msg("Unknown log level, falling back to trace.")

		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("Log level set.")
}
