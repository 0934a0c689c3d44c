package abi

import (
	"errors"
	"fmt"
)

// Kind names one of this module's error categories. Kind is compared, never the error
// string, so callers can branch on failure category.
type Kind string

const (
	KindUnsupportedVersion Kind = "unsupport-abi-version"
	KindDuplicateDef       Kind = "duplicate-abi-def"
	KindInvalidType        Kind = "invalid-type-inside-abi"
	KindCircularDef        Kind = "abi-circular-def"
	KindCircularStruct     Kind = "circular-reference-in-struct"
	KindUnpackException    Kind = "unpack-exception"
	KindArraySizeExceeds   Kind = "array-size-exceeds"
	KindDeadlineExceeded   Kind = "abi-serialization-deadline"
)

// Error is the concrete error type every operation in this module returns. Type and
// Field, when set, identify what was being processed when Err occurred, forming a
// context chain callers can print or inspect.
type Error struct {
	Kind  Kind
	Type  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Type != "" {
		msg += ": type " + e.Type
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can write
// errors.Is(err, &abi.Error{Kind: abi.KindArraySizeExceeds}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind from err, if err (or something it wraps) is an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// NewError constructs an *Error for typeName with a formatted message.
func NewError(kind Kind, typeName, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Type: typeName, Err: fmt.Errorf(format, args...)}
}

// WrapError constructs an *Error for typeName wrapping an existing cause.
func WrapError(kind Kind, typeName string, err error) *Error {
	return &Error{Kind: kind, Type: typeName, Err: err}
}

// WithField returns a copy of e with Field set, for errors discovered while walking a
// specific struct field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}
