package log

import (
	//nolint:depguard
	"log"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// for init only, before a Logger exists
func Fatal(v ...any) {
	log.Fatal(v...)
}

// Logger wraps zap with named module scopes. Each module resolves its own
// level from the environment (see moduleLevel).
type Logger struct {
	*zap.Logger
	names  []string
	derive func(names []string) *zap.Logger
}

// Module returns a child logger scoped under name.
func (l *Logger) Module(name string) *Logger {
	names := append(append([]string{}, l.names...), name)
	return &Logger{
		names:  names,
		Logger: l.derive(names),
		derive: l.derive,
	}
}

func NewLogger() *Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + name + "]")
		},
	}

	encoder := zapcore.NewConsoleEncoder(encCfg)
	writer := zapcore.AddSync(os.Stdout)

	level := zapcore.InfoLevel
	if lv, ok := parseLevelFromEnv("LOG_LEVEL"); ok {
		level = lv
	}

	newZap := func(lv zapcore.Level) *zap.Logger {
		core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(lv))
		return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel))
	}

	return &Logger{
		Logger: newZap(level).Named("main"),
		derive: func(names []string) *zap.Logger {
			return newZap(moduleLevel(names)).Named(strings.Join(names, "."))
		},
	}
}

func NewTest(t *testing.T) *Logger {
	logger := zaptest.NewLogger(t)
	return &Logger{
		Logger: logger,
		derive: func(names []string) *zap.Logger {
			return logger.Named(strings.Join(names, "."))
		},
	}
}

func NewNop() *Logger {
	logger := zap.NewNop()
	return &Logger{
		Logger: logger,
		derive: func(_ []string) *zap.Logger {
			return logger
		},
	}
}
