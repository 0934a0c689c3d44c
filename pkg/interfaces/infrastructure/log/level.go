package log

import "github.com/wasmabi/serializer/pkg/types"

// LogLevel aliases the shared level type so callers outside pkg/types don't need to
// import it directly.
type LogLevel = types.LogLevel

const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
