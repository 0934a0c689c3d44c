// Package log defines the logging interface every component takes a dependency on,
// rather than importing zap directly.
package log

import "go.uber.org/zap"

// Logger is a structured, leveled logger. Implementations wrap a *zap.Logger; callers
// that need zap-specific features (sampling, custom cores) can fall back to
// GetZapLogger.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With returns a Logger carrying args as additional structured fields on every
	// subsequent call.
	With(args ...interface{}) Logger

	Sync() error

	// GetZapLogger exposes the underlying zap logger for callers that need it directly.
	GetZapLogger() *zap.Logger
}
