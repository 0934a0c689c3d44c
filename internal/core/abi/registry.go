package abi

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wasmabi/serializer/internal/core/abi/wiretypes"
	executionInterfaces "github.com/wasmabi/serializer/internal/core/execution/interfaces"
	"github.com/wasmabi/serializer/pkg/abi"
	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// arrayNearCapFraction is the fraction of maxArraySize above which a decoded array length
// logs a Warn.
const arrayNearCapFraction = 0.9

// DecodeFunc decodes one value of a built-in type, honoring isArray/isOptional itself:
// the registry entry handles the vector/optional wire forms so the recursive walker
// never re-enters itself for a primitive array or optional.
type DecodeFunc func(s *Stream, isArray, isOptional bool, maxArraySize uint64) (interface{}, error)

// EncodeFunc is the symmetric encoder.
type EncodeFunc func(s *Stream, value interface{}, isArray, isOptional bool) error

type codecEntry struct {
	decode      DecodeFunc
	encode      EncodeFunc
	integerBits int // 0 if this entry is not an integer type
}

// Registry maps built-in type names to their decode/encode pair. It is built once and
// never mutated, mirroring configure_built_in_types() in the original.
type Registry struct {
	entries map[string]*codecEntry
	logger  log.Logger
}

// NewRegistry builds the registry with every built-in type name the ABI wire format
// defines. table_name and action_name deliberately share the same *codecEntry as name,
// and bool shares its entry's wire format with uint8 while keeping a distinct Go value
// type (bool).
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*codecEntry)}

	r.put("bool", scalarEntry(r, "bool", decodeBool, encodeBool, 0))
	r.put("int8", scalarEntry(r, "int8", decodeInt8, encodeInt8, 8))
	r.put("uint8", scalarEntry(r, "uint8", decodeUint8, encodeUint8, 8))
	r.put("int16", scalarEntry(r, "int16", decodeInt16, encodeInt16, 16))
	r.put("uint16", scalarEntry(r, "uint16", decodeUint16, encodeUint16, 16))
	r.put("int32", scalarEntry(r, "int32", decodeInt32, encodeInt32, 32))
	r.put("uint32", scalarEntry(r, "uint32", decodeUint32, encodeUint32, 32))
	r.put("int64", scalarEntry(r, "int64", decodeInt64, encodeInt64, 64))
	r.put("uint64", scalarEntry(r, "uint64", decodeUint64, encodeUint64, 64))
	r.put("varint32", scalarEntry(r, "varint32", decodeVarint32, encodeVarint32, 32))
	r.put("varuint32", scalarEntry(r, "varuint32", decodeVaruint32, encodeVaruint32, 32))
	r.put("float32", scalarEntry(r, "float32", decodeFloat32, encodeFloat32, 0))
	r.put("float64", scalarEntry(r, "float64", decodeFloat64, encodeFloat64, 0))
	r.put("bytes", scalarEntry(r, "bytes", decodeBytes, encodeBytes, 0))
	r.put("string", scalarEntry(r, "string", decodeString, encodeString, 0))
	r.put("symbol", scalarEntry(r, "symbol", decodeSymbol, encodeSymbol, 0))
	r.put("symbol_code", scalarEntry(r, "symbol_code", decodeSymbolCode, encodeSymbolCode, 0))
	r.put("asset", scalarEntry(r, "asset", decodeAsset, encodeAsset, 0))

	nameEntry := scalarEntry(r, "name", decodeName, encodeName, 0)
	r.entries["name"] = nameEntry
	r.entries["table_name"] = nameEntry
	r.entries["action_name"] = nameEntry

	return r
}

// SetLogger attaches l to r and returns r, for chaining onto NewRegistry without
// changing its signature. A nil l is tolerated: every logging call site below guards
// on it.
func (r *Registry) SetLogger(l log.Logger) *Registry {
	r.logger = l
	return r
}

func (r *Registry) put(name string, e *codecEntry) { r.entries[name] = e }

// Lookup returns the decode/encode pair registered for name.
func (r *Registry) Lookup(name string) (DecodeFunc, EncodeFunc, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, nil, false
	}
	return e.decode, e.encode, true
}

// IsBuiltin reports whether name has a registry entry.
func (r *Registry) IsBuiltin(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// IsInteger reports whether name is one of the uintN/intN family or varint32/varuint32.
func (r *Registry) IsInteger(name string) bool {
	_, ok := r.IntegerBits(name)
	return ok
}

// IntegerBits returns the bit width of an integer built-in, if name is one.
func (r *Registry) IntegerBits(name string) (int, bool) {
	e, ok := r.entries[name]
	if !ok || e.integerBits == 0 {
		return 0, false
	}
	return e.integerBits, true
}

// Names returns every registered built-in type name, sorted for stable display.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// codecRegistryAdapter satisfies execution/interfaces.CodecRegistry on behalf of a
// Registry, translating the Stream-typed DecodeFunc/EncodeFunc pair into the
// interface's ByteReader/ByteWriter-typed Codec. Kept separate from Registry itself so
// the hot transcoding path never pays for the *Stream -> ByteReader/ByteWriter boxing.
type codecRegistryAdapter struct {
	reg *Registry
}

// AsCodecRegistry exposes reg through the execution-layer CodecRegistry contract, for
// callers (e.g. the CLI's describe command) that only need name/kind introspection and
// should not depend on the concrete Registry type.
func (r *Registry) AsCodecRegistry() executionInterfaces.CodecRegistry {
	return &codecRegistryAdapter{reg: r}
}

func (a *codecRegistryAdapter) Lookup(typeName string) (executionInterfaces.Codec, bool) {
	decode, encode, ok := a.reg.Lookup(typeName)
	if !ok {
		return executionInterfaces.Codec{}, false
	}
	return executionInterfaces.Codec{
		Decode: func(r executionInterfaces.ByteReader, isArray, isOptional bool, maxArraySize uint64) (interface{}, error) {
			s, ok := r.(*Stream)
			if !ok {
				return nil, fmt.Errorf("codec %q requires a *Stream reader", typeName)
			}
			return decode(s, isArray, isOptional, maxArraySize)
		},
		Encode: func(w executionInterfaces.ByteWriter, value interface{}, isArray, isOptional bool) error {
			s, ok := w.(*Stream)
			if !ok {
				return fmt.Errorf("codec %q requires a *Stream writer", typeName)
			}
			return encode(s, value, isArray, isOptional)
		},
	}, true
}

func (a *codecRegistryAdapter) IsBuiltin(typeName string) bool { return a.reg.IsBuiltin(typeName) }
func (a *codecRegistryAdapter) IsInteger(typeName string) bool { return a.reg.IsInteger(typeName) }
func (a *codecRegistryAdapter) IntegerBits(typeName string) (int, bool) {
	return a.reg.IntegerBits(typeName)
}

func scalarEntry(r *Registry, typeName string, decodeOne func(*Stream) (interface{}, error), encodeOne func(*Stream, interface{}) error, bits int) *codecEntry {
	decode := func(s *Stream, isArray, isOptional bool, maxArraySize uint64) (interface{}, error) {
		if isArray {
			n, err := ReadUvarint(s)
			if err != nil {
				return nil, abi.WrapError(abi.KindUnpackException, typeName+"[]", err)
			}
			if n >= maxArraySize {
				return nil, abi.NewError(abi.KindArraySizeExceeds, typeName+"[]", "array size %d exceeds max %d", n, maxArraySize)
			}
			if r.logger != nil && float64(n) >= float64(maxArraySize)*arrayNearCapFraction {
				r.logger.Warnf("abi: array %s length %d near cap %d", typeName+"[]", n, maxArraySize)
			}
			out := make([]interface{}, 0, n)
			for i := uint64(0); i < n; i++ {
				v, err := decodeOne(s)
				if err != nil {
					return nil, abi.WrapError(abi.KindUnpackException, typeName+"[]", err)
				}
				out = append(out, v)
			}
			return out, nil
		}
		if isOptional {
			flag, err := s.ReadByte()
			if err != nil {
				return nil, abi.WrapError(abi.KindUnpackException, typeName+"?", err)
			}
			if flag == 0 {
				return nil, nil
			}
			v, err := decodeOne(s)
			if err != nil {
				return nil, abi.WrapError(abi.KindUnpackException, typeName+"?", err)
			}
			return v, nil
		}
		v, err := decodeOne(s)
		if err != nil {
			return nil, abi.WrapError(abi.KindUnpackException, typeName, err)
		}
		return v, nil
	}

	encode := func(s *Stream, value interface{}, isArray, isOptional bool) error {
		if isArray {
			arr, ok := value.([]interface{})
			if !ok {
				return abi.NewError(abi.KindInvalidType, typeName+"[]", "expected an array value, got %T", value)
			}
			if err := WriteUvarint(s, uint64(len(arr))); err != nil {
				return err
			}
			for _, v := range arr {
				if err := encodeOne(s, v); err != nil {
					return abi.WrapError(abi.KindUnpackException, typeName+"[]", err)
				}
			}
			return nil
		}
		if isOptional {
			if value == nil {
				return s.WriteByte(0)
			}
			if err := s.WriteByte(1); err != nil {
				return err
			}
			return encodeOne(s, value)
		}
		if err := encodeOne(s, value); err != nil {
			return abi.WrapError(abi.KindUnpackException, typeName, err)
		}
		return nil
	}

	return &codecEntry{decode: decode, encode: encode, integerBits: bits}
}

// --- scalar decode/encode funcs, one pair per built-in type ---

func decodeBool(s *Stream) (interface{}, error) {
	b, err := s.ReadByte()
	return b != 0, err
}
func encodeBool(s *Stream, v interface{}) error {
	b, err := toBool(v)
	if err != nil {
		return err
	}
	if b {
		return s.WriteByte(1)
	}
	return s.WriteByte(0)
}

func decodeInt8(s *Stream) (interface{}, error) { return s.ReadInt8() }
func encodeInt8(s *Stream, v interface{}) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return s.WriteInt8(int8(n))
}

func decodeUint8(s *Stream) (interface{}, error) { return s.ReadUint8() }
func encodeUint8(s *Stream, v interface{}) error {
	n, err := toUint64(v)
	if err != nil {
		return err
	}
	return s.WriteUint8(uint8(n))
}

func decodeInt16(s *Stream) (interface{}, error) { return s.ReadInt16() }
func encodeInt16(s *Stream, v interface{}) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return s.WriteInt16(int16(n))
}

func decodeUint16(s *Stream) (interface{}, error) { return s.ReadUint16() }
func encodeUint16(s *Stream, v interface{}) error {
	n, err := toUint64(v)
	if err != nil {
		return err
	}
	return s.WriteUint16(uint16(n))
}

func decodeInt32(s *Stream) (interface{}, error) { return s.ReadInt32() }
func encodeInt32(s *Stream, v interface{}) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return s.WriteInt32(int32(n))
}

func decodeUint32(s *Stream) (interface{}, error) { return s.ReadUint32() }
func encodeUint32(s *Stream, v interface{}) error {
	n, err := toUint64(v)
	if err != nil {
		return err
	}
	return s.WriteUint32(uint32(n))
}

func decodeInt64(s *Stream) (interface{}, error) { return s.ReadInt64() }
func encodeInt64(s *Stream, v interface{}) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return s.WriteInt64(n)
}

func decodeUint64(s *Stream) (interface{}, error) { return s.ReadUint64() }
func encodeUint64(s *Stream, v interface{}) error {
	n, err := toUint64(v)
	if err != nil {
		return err
	}
	return s.WriteUint64(n)
}

func decodeVarint32(s *Stream) (interface{}, error) {
	v, err := ReadVarint(s)
	return int32(v), err
}
func encodeVarint32(s *Stream, v interface{}) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return WriteVarint(s, n)
}

func decodeVaruint32(s *Stream) (interface{}, error) {
	v, err := ReadUvarint(s)
	return uint32(v), err
}
func encodeVaruint32(s *Stream, v interface{}) error {
	n, err := toUint64(v)
	if err != nil {
		return err
	}
	return WriteUvarint(s, n)
}

func decodeFloat32(s *Stream) (interface{}, error) { return s.ReadFloat32() }
func encodeFloat32(s *Stream, v interface{}) error {
	f, err := toFloat64(v)
	if err != nil {
		return err
	}
	return s.WriteFloat32(float32(f))
}

func decodeFloat64(s *Stream) (interface{}, error) { return s.ReadFloat64() }
func encodeFloat64(s *Stream, v interface{}) error {
	f, err := toFloat64(v)
	if err != nil {
		return err
	}
	return s.WriteFloat64(f)
}

func decodeBytes(s *Stream) (interface{}, error) {
	n, err := ReadUvarint(s)
	if err != nil {
		return nil, err
	}
	return s.ReadBytes(int(n))
}
func encodeBytes(s *Stream, v interface{}) error {
	b, err := toBytes(v)
	if err != nil {
		return err
	}
	if err := WriteUvarint(s, uint64(len(b))); err != nil {
		return err
	}
	return s.WriteBytes(b)
}

func decodeString(s *Stream) (interface{}, error) {
	n, err := ReadUvarint(s)
	if err != nil {
		return nil, err
	}
	b, err := s.ReadBytes(int(n))
	return string(b), err
}
func encodeString(s *Stream, v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	if err := WriteUvarint(s, uint64(len(str))); err != nil {
		return err
	}
	return s.WriteBytes([]byte(str))
}

func decodeName(s *Stream) (interface{}, error) {
	v, err := s.ReadUint64()
	if err != nil {
		return nil, err
	}
	return wiretypes.DecodeName(v), nil
}
func encodeName(s *Stream, v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	value, err := wiretypes.EncodeName(str)
	if err != nil {
		return err
	}
	return s.WriteUint64(value)
}

func decodeSymbolCode(s *Stream) (interface{}, error) {
	v, err := s.ReadUint64()
	if err != nil {
		return nil, err
	}
	return wiretypes.DecodeSymbolCode(v), nil
}
func encodeSymbolCode(s *Stream, v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	value, err := wiretypes.EncodeSymbolCode(str)
	if err != nil {
		return err
	}
	return s.WriteUint64(value)
}

func decodeSymbol(s *Stream) (interface{}, error) {
	v, err := s.ReadUint64()
	if err != nil {
		return nil, err
	}
	return wiretypes.DecodeSymbol(v), nil
}
func encodeSymbol(s *Stream, v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	value, err := wiretypes.EncodeSymbol(str)
	if err != nil {
		return err
	}
	return s.WriteUint64(value)
}

func decodeAsset(s *Stream) (interface{}, error) {
	amount, err := s.ReadInt64()
	if err != nil {
		return nil, err
	}
	sym, err := s.ReadUint64()
	if err != nil {
		return nil, err
	}
	return wiretypes.DecodeAsset(wiretypes.Asset{Amount: amount, Symbol: sym}), nil
}
func encodeAsset(s *Stream, v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	a, err := wiretypes.EncodeAsset(str)
	if err != nil {
		return err
	}
	if err := s.WriteInt64(a.Amount); err != nil {
		return err
	}
	return s.WriteUint64(a.Symbol)
}

// --- numeric coercion helpers: registry encoders accept the exact Go type a matching
// decode call would have produced, but also plain int/float64 forms (and, for the
// integer types, string numerals) so hand-built or json.Unmarshal-sourced value trees
// work without per-field casts.

func toBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case uint8:
		return x != 0, nil
	default:
		return false, fmt.Errorf("expected a bool, got %T", v)
	}
}

func toInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case float32:
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toUint64(v interface{}) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case uint32:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	case uint:
		return uint64(x), nil
	case int64:
		return uint64(x), nil
	case int32:
		return uint64(x), nil
	case int16:
		return uint64(x), nil
	case int8:
		return uint64(x), nil
	case int:
		return uint64(x), nil
	case float64:
		return uint64(x), nil
	case float32:
		return uint64(x), nil
	case string:
		return strconv.ParseUint(x, 10, 64)
	default:
		return 0, fmt.Errorf("expected an unsigned integer, got %T", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64, int32, int16, int8, int:
		n, _ := toInt64(v)
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a float, got %T", v)
	}
}

func toBytes(v interface{}) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, fmt.Errorf("expected bytes, got %T", v)
	}
}
