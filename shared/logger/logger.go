package logger

import (
	"io"
	"os"
	"time"

	"pms/config"
	"pms/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level until the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Configure applies the configured log level. Outside development the console writer is
// replaced by JSON lines tagged with the application name and environment.
func Configure(config *config.Config) {
	configure(config, os.Stdout)
}

func configure(config *config.Config, out io.Writer) {
	if config.Server.Env != "" && config.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(out).With().
			Timestamp().
			Str("app", config.App.Name).
			Str("env", config.Server.Env).
			Logger()
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
