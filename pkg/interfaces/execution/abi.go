package execution

import (
	"time"

	"github.com/wasmabi/serializer/pkg/abi"
)

// Serializer is the public surface of the schema-driven binary<->value transcoder. An
// implementation is constructed from a validated abi.Document and answers both
// transcoding directions plus the lookups callers need to resolve an action or table
// name down to its struct type.
type Serializer interface {
	// BinaryToValue decodes buf as typeName. maxTime of zero uses the Serializer's
	// configured default budget.
	BinaryToValue(typeName string, buf []byte, maxTime time.Duration) (interface{}, error)

	// ValueToBinary encodes value as typeName into a freshly allocated, trimmed buffer.
	ValueToBinary(typeName string, value interface{}, maxTime time.Duration) ([]byte, error)

	// IsType reports whether typeName names a usable type under this Serializer's
	// document.
	IsType(typeName string, maxTime time.Duration) (bool, error)

	// GetActionType returns the struct type backing actionName, or "" if unknown.
	GetActionType(actionName string) string

	// GetTableType returns the struct type backing tableName, or "" if unknown.
	GetTableType(tableName string) string

	// GetStruct returns the struct definition for typeName.
	GetStruct(typeName string) (*abi.Struct, error)

	// ErrorMessage looks up the application error message registered for code.
	ErrorMessage(code int32) (string, bool)
}
