// Package abi implements the binary/value transcoder: the built-in codec registry (C3),
// the type algebra (C4), the traversal context (C7) and the recursive engine (C8) that
// drives them against a pkg/abi.Document (C5) validated by validator.go (C6).
package abi

import (
	"time"

	"github.com/wasmabi/serializer/pkg/abi"
	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// defaultOutputCapacity is the initial size of a value_to_binary scratch buffer before
// it is trimmed to the bytes actually written.
const defaultOutputCapacity = 1 << 20

// MaxArraySize bounds a single decoded array length.
const MaxArraySize = 1 << 20

// Serializer binds a validated ABI document to the registry that resolves its built-in
// leaf types. It is immutable after NewSerializer returns; concurrent read-only calls
// from multiple goroutines are safe as long as each uses its own Context and buffers.
type Serializer struct {
	doc              *abi.Document
	reg              *Registry
	maxSerialization time.Duration
	stats            *Stats
	logger           log.Logger
}

// NewSerializer validates doc once and, on success, returns a Serializer ready to
// transcode under it. maxSerialization bounds every Context this Serializer creates
// unless a call overrides it with its own max_time. stats may be nil to skip metrics.
// logger may be nil; every log call below is guarded accordingly.
func NewSerializer(doc *abi.Document, maxSerialization time.Duration, stats *Stats, logger log.Logger) (*Serializer, error) {
	reg := NewRegistry().SetLogger(logger)
	ctx := NewContext(maxSerialization).SetLogger(logger)
	if logger != nil {
		logger.Debugf("abi: validating document version %q", doc.Version)
	}
	err := ValidateDocument(doc, reg, ctx)
	if stats != nil {
		stats.ObserveRegistration(err)
	}
	if err != nil {
		if logger != nil {
			logger.Errorf("abi: document validation failed: %v", err)
		}
		return nil, err
	}
	return &Serializer{doc: doc, reg: reg, maxSerialization: maxSerialization, stats: stats, logger: logger}, nil
}

func (s *Serializer) newContext(maxTime time.Duration) *Context {
	if maxTime <= 0 {
		maxTime = s.maxSerialization
	}
	return NewContext(maxTime).SetLogger(s.logger)
}

// BinaryToValue decodes buf as typeName under a fresh Context bounded by maxTime (zero
// meaning "use the Serializer's default").
func (s *Serializer) BinaryToValue(typeName string, buf []byte, maxTime time.Duration) (interface{}, error) {
	if s.logger != nil {
		s.logger.Debugf("abi: binary_to_value %s (%d bytes)", typeName, len(buf))
	}
	start := time.Now()
	ctx := s.newContext(maxTime)
	ds := NewReader(buf)
	v, err := s.binaryToValue(abi.TypeName(typeName), ds, ctx)
	if s.stats != nil {
		s.stats.ObserveDecode(start, err)
	}
	if err != nil && s.logger != nil {
		s.logger.Errorf("abi: binary_to_value %s failed: %v", typeName, err)
	}
	return v, err
}

// ValueToBinary encodes value as typeName into a freshly allocated buffer, trimmed to
// the bytes actually written.
func (s *Serializer) ValueToBinary(typeName string, value interface{}, maxTime time.Duration) ([]byte, error) {
	if s.logger != nil {
		s.logger.Debugf("abi: value_to_binary %s", typeName)
	}
	start := time.Now()
	ctx := s.newContext(maxTime)
	ds := NewWriter(make([]byte, defaultOutputCapacity))
	err := s.valueToBinary(abi.TypeName(typeName), value, ds, ctx)
	if s.stats != nil {
		s.stats.ObserveEncode(start, err)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("abi: value_to_binary %s failed: %v", typeName, err)
		}
		return nil, err
	}
	return ds.Bytes(), nil
}

// ValueToBinaryStream encodes value as typeName into a caller-owned stream, the
// overload that writes directly into an existing buffer instead of allocating one.
func (s *Serializer) ValueToBinaryStream(typeName string, value interface{}, ds *Stream, maxTime time.Duration) error {
	if s.logger != nil {
		s.logger.Debugf("abi: value_to_binary_stream %s", typeName)
	}
	start := time.Now()
	ctx := s.newContext(maxTime)
	err := s.valueToBinary(abi.TypeName(typeName), value, ds, ctx)
	if s.stats != nil {
		s.stats.ObserveEncode(start, err)
	}
	if err != nil && s.logger != nil {
		s.logger.Errorf("abi: value_to_binary_stream %s failed: %v", typeName, err)
	}
	return err
}

// IsType reports whether typeName names a usable type under this Serializer's document.
func (s *Serializer) IsType(typeName string, maxTime time.Duration) (bool, error) {
	ctx := s.newContext(maxTime)
	return IsType(s.doc, s.reg, ctx, abi.TypeName(typeName))
}

// GetActionType returns the struct type backing actionName, or "" if unknown.
func (s *Serializer) GetActionType(actionName string) string {
	if a := findAction(s.doc, actionName); a != nil {
		return a.Type
	}
	return ""
}

// GetTableType returns the struct type backing tableName, or "" if unknown.
func (s *Serializer) GetTableType(tableName string) string {
	if t := findTable(s.doc, tableName); t != nil {
		return t.Type
	}
	return ""
}

// GetStruct returns the struct definition for typeName, after resolving typedefs.
func (s *Serializer) GetStruct(typeName string) (*abi.Struct, error) {
	st := findStruct(s.doc, Resolve(s.doc, abi.TypeName(typeName)))
	if st == nil {
		return nil, abi.NewError(abi.KindInvalidType, typeName, "no struct named %q", typeName)
	}
	return st, nil
}

// ErrorMessage looks up the application error message registered for code, from the
// document's error_messages table alongside its typedefs/structs/actions/tables.
func (s *Serializer) ErrorMessage(code int32) (string, bool) {
	for _, m := range s.doc.ErrorMessages {
		if m.Code == code {
			return m.Message, true
		}
	}
	return "", false
}

// binaryToValue is the binary -> value direction.
func (s *Serializer) binaryToValue(t abi.TypeName, ds *Stream, ctx *Context) (interface{}, error) {
	if err := ctx.CheckDeadline(); err != nil {
		return nil, err
	}
	if ctx.Enter() > recursionDepthCeiling {
		defer ctx.Exit()
		return nil, abi.NewError(abi.KindUnpackException, string(t), "recursion depth %d exceeds ceiling %d", ctx.Depth(), recursionDepthCeiling)
	}
	defer ctx.Exit()

	r := Resolve(s.doc, t)
	f := Fundamental(r)

	if decode, _, ok := s.reg.Lookup(string(f)); ok {
		v, err := decode(ds, IsArray(r), IsOptional(r), MaxArraySize)
		if err != nil {
			return nil, wrapTypeError(err, string(t))
		}
		return v, nil
	}

	if IsArray(r) {
		n, err := ReadUvarint(ds)
		if err != nil {
			return nil, abi.WrapError(abi.KindUnpackException, string(t), err)
		}
		if n >= MaxArraySize {
			return nil, abi.NewError(abi.KindArraySizeExceeds, string(t), "array size %d exceeds max %d", n, MaxArraySize)
		}
		out := make([]interface{}, 0, n)
		for i := uint64(0); i < n; i++ {
			v, err := s.binaryToValue(f, ds, ctx)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, abi.NewError(abi.KindInvalidType, string(t), "array element %d is null", i)
			}
			out = append(out, v)
		}
		return out, nil
	}

	if IsOptional(r) {
		flag, err := ds.ReadByte()
		if err != nil {
			return nil, abi.WrapError(abi.KindUnpackException, string(t), err)
		}
		if flag == 0 {
			return nil, nil
		}
		return s.binaryToValue(f, ds, ctx)
	}

	if st := findStruct(s.doc, r); st != nil {
		obj := abi.NewObject()
		if st.Base != "" {
			baseVal, err := s.binaryToValue(abi.TypeName(st.Base), ds, ctx)
			if err != nil {
				return nil, err
			}
			if baseObj, ok := baseVal.(*abi.Object); ok {
				for _, k := range baseObj.Keys() {
					v, _ := baseObj.Get(k)
					obj.Set(k, v)
				}
			} else {
				obj.Set(st.Base, baseVal)
			}
		}
		for _, field := range st.Fields {
			if err := ctx.CheckDeadline(); err != nil {
				return nil, err
			}
			v, err := s.binaryToValue(RemoveBinExtension(field.Type), ds, ctx)
			if err != nil {
				return nil, abi.WrapError(abi.KindUnpackException, st.Name, err).WithField(field.Name)
			}
			obj.Set(field.Name, v)
		}
		return obj, nil
	}

	return nil, abi.NewError(abi.KindInvalidType, string(t), "unpack: unknown type")
}

// valueToBinary is the value -> binary direction.
func (s *Serializer) valueToBinary(t abi.TypeName, value interface{}, ds *Stream, ctx *Context) error {
	if err := ctx.CheckDeadline(); err != nil {
		return err
	}
	if ctx.Enter() > recursionDepthCeiling {
		defer ctx.Exit()
		return abi.NewError(abi.KindUnpackException, string(t), "recursion depth %d exceeds ceiling %d", ctx.Depth(), recursionDepthCeiling)
	}
	defer ctx.Exit()

	r := Resolve(s.doc, t)
	f := Fundamental(r)

	if _, encode, ok := s.reg.Lookup(string(f)); ok {
		if err := encode(ds, value, IsArray(r), IsOptional(r)); err != nil {
			return wrapTypeError(err, string(t))
		}
		return nil
	}

	if IsArray(r) {
		arr, ok := value.([]interface{})
		if !ok {
			return abi.NewError(abi.KindInvalidType, string(t), "expected an array value, got %T", value)
		}
		if err := WriteUvarint(ds, uint64(len(arr))); err != nil {
			return err
		}
		for _, v := range arr {
			if err := s.valueToBinary(f, v, ds, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	if IsOptional(r) {
		if value == nil {
			return ds.WriteByte(0)
		}
		if err := ds.WriteByte(1); err != nil {
			return err
		}
		return s.valueToBinary(f, value, ds, ctx)
	}

	if st := findStruct(s.doc, r); st != nil {
		obj, ok := value.(*abi.Object)
		if !ok {
			return abi.NewError(abi.KindInvalidType, st.Name, "expected an object value, got %T", value)
		}
		if st.Base != "" {
			if err := s.valueToBinary(abi.TypeName(st.Base), obj, ds, ctx); err != nil {
				return err
			}
		}
		for _, field := range st.Fields {
			if err := ctx.CheckDeadline(); err != nil {
				return err
			}
			v, found := obj.Get(field.Name)
			if !found {
				return abi.NewError(abi.KindInvalidType, st.Name, "missing %s", field.Name).WithField(field.Name)
			}
			if err := s.valueToBinary(RemoveBinExtension(field.Type), v, ds, ctx); err != nil {
				return wrapTypeError(err, st.Name)
			}
		}
		return nil
	}

	return abi.NewError(abi.KindInvalidType, string(t), "unpack: unknown type")
}

func wrapTypeError(err error, typeName string) error {
	if e, ok := err.(*abi.Error); ok {
		if e.Type == "" {
			cp := *e
			cp.Type = typeName
			return &cp
		}
		return e
	}
	return abi.WrapError(abi.KindUnpackException, typeName, err)
}
