package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is an ordered string-keyed value map. Go's map type has no stable iteration
// order, but struct decoding must preserve declaration order (base fields first) so
// round-trip tests can observe that order — so struct values are represented with this
// small insertion-ordered container instead of map[string]any.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// Set inserts or updates key. The first Set for a given key fixes its position in Keys.
func (o *Object) Set(key string, value interface{}) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key, if any.
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns field names in insertion order. Callers must not mutate the slice.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Equal reports whether o and other have the same keys, in the same order, with equal
// values for the composite types this package produces (nil, bool, numeric scalars,
// strings, []byte, []interface{} and *Object, recursively).
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.keys) != len(other.keys) {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		av, _ := o.Get(k)
		bv, _ := other.Get(k)
		if !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

// MarshalJSON writes o's fields in insertion order, so struct decoding order stays
// stable and observable end to end, including through JSON.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v, _ := o.Get(k)
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses an object preserving source key order, using a streaming
// decoder rather than map[string]interface{} (which discards it).
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeOrderedValue(dec)
	if err != nil {
		return err
	}
	parsed, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("abi: expected a JSON object, got %T", v)
	}
	*o = *parsed
	return nil
}

// DecodeValue parses a JSON document of any shape — object, array, or scalar — into the
// same order-preserving representation UnmarshalJSON builds for objects, so a caller
// decoding a top-level array of structs still gets *Object elements rather than
// order-losing map[string]interface{} ones.
func DecodeValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	return decodeOrderedValue(dec)
}

// decodeOrderedValue reads one JSON value from dec, preserving object key order by
// building *Object instead of letting encoding/json decode into a plain map.
func decodeOrderedValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("abi: object key must be a string, got %v", keyTok)
				}
				val, err := decodeOrderedValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := make([]interface{}, 0)
			for dec.More() {
				val, err := decodeOrderedValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("abi: unexpected JSON delimiter %v", t)
		}
	default:
		return tok, nil
	}
}

func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		return ok && av.Equal(bv)
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case []byte:
		bv, ok := b.([]byte)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
