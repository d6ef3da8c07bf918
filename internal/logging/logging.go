package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's sugared logger for CLI-friendly output
type Logger struct {
	*zap.SugaredLogger
}

// creates a console logger; verbose enables debug level
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		// fall back to a no-op logger rather than failing CLI startup
		return &Logger{zap.NewNop().Sugar()}
	}

	return &Logger{base.Sugar()}
}

// discards all output; used in tests
func NewNopLogger() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
