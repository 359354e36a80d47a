package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	orig := envFunc
	envFunc = func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
	t.Cleanup(func() { envFunc = orig })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"Warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"bogus", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		lv, ok := parseLevel(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.level, lv, tt.in)
	}
}

func TestModuleLevelFallback(t *testing.T) {
	withEnv(t, map[string]string{
		"LOG_LEVEL": "warn",
	})

	assert.Equal(t, zapcore.WarnLevel, moduleLevel([]string{"Signal"}))
	assert.Equal(t, zapcore.WarnLevel, moduleLevel([]string{"Signal", "Coordinator"}))
}

func TestModuleLevelSpecificWins(t *testing.T) {
	withEnv(t, map[string]string{
		"LOG_LEVEL":                       "warn",
		"LOG_LEVEL__SIGNAL":               "info",
		"LOG_LEVEL__SIGNAL__COORDINATOR":  "debug",
	})

	assert.Equal(t, zapcore.DebugLevel, moduleLevel([]string{"Signal", "Coordinator"}))
	assert.Equal(t, zapcore.InfoLevel, moduleLevel([]string{"Signal"}))
	assert.Equal(t, zapcore.InfoLevel, moduleLevel([]string{"Signal", "Relay"}))
	assert.Equal(t, zapcore.WarnLevel, moduleLevel([]string{"Registry"}))
}

func TestModuleLevelCamelCaseKeys(t *testing.T) {
	withEnv(t, map[string]string{
		"LOG_LEVEL__CONN_MANAGER": "debug",
	})

	assert.Equal(t, zapcore.DebugLevel, moduleLevel([]string{"ConnManager"}))
	assert.Equal(t, zapcore.InfoLevel, moduleLevel([]string{"Other"}))
}

func TestModuleChainKeepsNames(t *testing.T) {
	logger := NewNop()
	child := logger.Module("Signal").Module("Relay")
	assert.Equal(t, []string{"Signal", "Relay"}, child.names)
}
