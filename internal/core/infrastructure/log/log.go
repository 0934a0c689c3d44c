// Package log implements pkg/interfaces/infrastructure/log.Logger on top of zap.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	logiface "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// Logger wraps a *zap.Logger and its sugared view, matching the interface's mix of
// plain and formatted log calls.
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

// New builds a Logger at the given level, writing JSON-encoded entries to stderr.
func New(level logiface.LogLevel) (*Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{zapLogger: zapLogger, sugar: zapLogger.Sugar()}, nil
}

func (l *Logger) Debug(msg string)                          { l.sugar.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.sugar.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.sugar.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.sugar.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                          { l.sugar.Fatal(msg) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

func (l *Logger) With(args ...interface{}) logiface.Logger {
	return &Logger{
		zapLogger: l.zapLogger.With(toZapFields(args...)...),
		sugar:     l.sugar.With(args...),
	}
}

func (l *Logger) Sync() error { return l.zapLogger.Sync() }

func (l *Logger) GetZapLogger() *zap.Logger { return l.zapLogger }

// toZapFields turns a flat key/value... argument list into zap.Fields, matching how
// sugar.With interprets the same arguments.
func toZapFields(args ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}
