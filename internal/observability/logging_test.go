package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mauledji/cariss/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: " error ", want: zapcore.ErrorLevel},
		{in: "", want: zapcore.InfoLevel},
		{in: "verbose", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLoggerConfigCarriesServiceIdentity(t *testing.T) {
	app := config.AppConfig{Name: "cariss-auth", Version: "1.4.0", Env: "staging"}
	cfg := loggerConfig(app, config.LoggerConfig{Level: "debug"})

	assert.Equal(t, map[string]interface{}{
		"service": "cariss-auth",
		"version": "1.4.0",
		"env":     "staging",
	}, cfg.InitialFields)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.Equal(t, "json", cfg.Encoding)
	assert.True(t, cfg.Development)
	assert.Nil(t, cfg.Sampling)
}

func TestLoggerConfigSamplesInProduction(t *testing.T) {
	cfg := loggerConfig(config.AppConfig{Name: "cariss-auth", Env: "Production"}, config.LoggerConfig{})

	require.NotNil(t, cfg.Sampling)
	assert.Equal(t, 100, cfg.Sampling.Initial)
	assert.False(t, cfg.Development)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
}

func TestNewLoggerBuilds(t *testing.T) {
	logger, err := NewLogger(config.AppConfig{Name: "cariss-auth", Env: "test"}, config.LoggerConfig{Level: "error"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
