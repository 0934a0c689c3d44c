// Package interfaces defines the internal, execution-layer contracts the transcoder's
// own components are built against, so internal/core/abi's concrete registry/validator
// can be swapped or mocked independently of the public Serializer surface.
package interfaces

import "time"

// ByteReader is the minimal cursor surface a codec decodes from.
type ByteReader interface {
	ReadByte() (byte, error)
	ReadBytes(n int) ([]byte, error)
	Remaining() int
	Tellp() int
}

// ByteWriter is the minimal cursor surface a codec encodes into.
type ByteWriter interface {
	WriteByte(b byte) error
	WriteBytes(b []byte) error
	Tellp() int
}

// Codec is one entry of the built-in registry: a decode/encode pair dispatched by type
// name. isArray/isOptional let the codec itself handle the vector/optional wire form of
// a primitive without the walker re-entering itself.
type Codec struct {
	Decode func(r ByteReader, isArray, isOptional bool, maxArraySize uint64) (interface{}, error)
	Encode func(w ByteWriter, value interface{}, isArray, isOptional bool) error
}

// CodecRegistry resolves a built-in type name to its Codec.
type CodecRegistry interface {
	Lookup(typeName string) (Codec, bool)
	IsBuiltin(typeName string) bool
	IsInteger(typeName string) bool
	IntegerBits(typeName string) (int, bool)
}

// DeadlineChecker is the traversal context's abort surface: every recursive transcoding
// and validation step calls CheckDeadline before doing work. internal/core/abi.Context
// implements this (see the compile-time assertion there).
type DeadlineChecker interface {
	CheckDeadline() error
}

// Clock abstracts wall-clock access for anything that wraps a DeadlineChecker and wants
// to reason about remaining budget without importing internal/core/abi directly.
// internal/core/abi.Context implements this too.
type Clock interface {
	Now() time.Time
}
