package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"pms/config"
	"pms/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("posting failed"))

	assert.Contains(t, buf.String(), "posting failed")
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "warn", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "error", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "disabled", logLevel: "disabled", expected: zerolog.Disabled},
		{name: "invalid level defaults to trace", logLevel: "loud", expected: zerolog.TraceLevel},
		{name: "empty level uses no level", logLevel: "", expected: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.ConfigureTo(cfg, &buf)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_JSONOutsideDevelopment(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "pms"

	logger.ConfigureTo(cfg, &buf)
	log.Info().Str("audit_date", "2024-03-10").Msg("night audit completed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &line))
	assert.Equal(t, "pms", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "2024-03-10", line["audit_date"])
	assert.Equal(t, "night audit completed", line["message"])
}

func TestConfigure_DevelopmentKeepsConsole(t *testing.T) {
	restore(t)

	var console bytes.Buffer
	log.Logger = log.Output(&console)

	var out bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "info"

	logger.ConfigureTo(cfg, &out)
	log.Info().Msg("ready")

	assert.Empty(t, out.String())
	assert.Contains(t, console.String(), "ready")
}
