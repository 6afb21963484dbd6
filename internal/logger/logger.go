package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: console lines by default, JSON when json is set.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	if json {
		encoding = "json"
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		DisableStacktrace: !debug,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",
			NameKey:    "component",
			EncodeName: zapcore.FullNameEncoder,

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			StacktraceKey:  "stacktrace",
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	return cfg.Build()
}

// Named returns a child logger for a component, tolerating a nil parent.
func Named(parent *zap.Logger, component string) *zap.Logger {
	return WithFields(parent).Named(component)
}
