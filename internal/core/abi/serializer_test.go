package abi

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/wasmabi/serializer/pkg/abi"
)

// TestE1PointStruct is seed scenario E1.
func TestE1PointStruct(t *testing.T) {
	doc := &abi.Document{
		Version: "wasm::abi/1.1",
		Structs: []abi.Struct{
			{Name: "pt", Fields: []abi.Field{{Name: "x", Type: "uint32"}, {Name: "y", Type: "uint32"}}},
		},
	}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	value := abi.NewObject()
	value.Set("x", uint32(1))
	value.Set("y", uint32(2))

	bin, err := s.ValueToBinary("pt", value, 0)
	if err != nil {
		t.Fatalf("ValueToBinary: %v", err)
	}
	want := "0100000002000000"
	if got := hex.EncodeToString(bin); got != want {
		t.Fatalf("encoding mismatch: got %s, want %s", got, want)
	}

	decoded, err := s.BinaryToValue("pt", bin, 0)
	if err != nil {
		t.Fatalf("BinaryToValue: %v", err)
	}
	obj, ok := decoded.(*abi.Object)
	if !ok {
		t.Fatalf("decoded value is %T, want *abi.Object", decoded)
	}
	if !obj.Equal(value) {
		t.Fatalf("decoded value %v does not match original %v", obj, value)
	}
}

// TestE2Uint32Array is seed scenario E2.
func TestE2Uint32Array(t *testing.T) {
	doc := &abi.Document{Version: "wasm::abi/1.1"}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	value := []interface{}{uint32(1), uint32(2), uint32(3)}
	bin, err := s.ValueToBinary("uint32[]", value, 0)
	if err != nil {
		t.Fatalf("ValueToBinary: %v", err)
	}
	want := "03010000000200000003000000"
	if got := hex.EncodeToString(bin); got != want {
		t.Fatalf("encoding mismatch: got %s, want %s", got, want)
	}

	decoded, err := s.BinaryToValue("uint32[]", bin, 0)
	if err != nil {
		t.Fatalf("BinaryToValue: %v", err)
	}
	arr, ok := decoded.([]interface{})
	if !ok || len(arr) != 3 {
		t.Fatalf("decoded value = %v, want a 3-element array", decoded)
	}
}

// TestE3OptionalString is seed scenario E3.
func TestE3OptionalString(t *testing.T) {
	doc := &abi.Document{Version: "wasm::abi/1.1"}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	binNone, err := s.ValueToBinary("string?", nil, 0)
	if err != nil {
		t.Fatalf("ValueToBinary(nil): %v", err)
	}
	if hex.EncodeToString(binNone) != "00" {
		t.Fatalf("none encoding mismatch: got %x", binNone)
	}
	decodedNone, err := s.BinaryToValue("string?", binNone, 0)
	if err != nil {
		t.Fatalf("BinaryToValue: %v", err)
	}
	if decodedNone != nil {
		t.Fatalf("decoded none = %v, want nil", decodedNone)
	}

	binHi, err := s.ValueToBinary("string?", "hi", 0)
	if err != nil {
		t.Fatalf("ValueToBinary(hi): %v", err)
	}
	if want := "01026869"; hex.EncodeToString(binHi) != want {
		t.Fatalf("hi encoding mismatch: got %x, want %s", binHi, want)
	}
	decodedHi, err := s.BinaryToValue("string?", binHi, 0)
	if err != nil {
		t.Fatalf("BinaryToValue: %v", err)
	}
	if decodedHi != "hi" {
		t.Fatalf("decoded = %v, want hi", decodedHi)
	}
}

// TestE4StructInheritance is seed scenario E4: base fields precede derived fields.
func TestE4StructInheritance(t *testing.T) {
	doc := &abi.Document{
		Version: "wasm::abi/1.1",
		Structs: []abi.Struct{
			{Name: "b", Fields: []abi.Field{{Name: "a", Type: "uint8"}}},
			{Name: "d", Base: "b", Fields: []abi.Field{{Name: "c", Type: "uint8"}}},
		},
	}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	value := abi.NewObject()
	value.Set("a", uint8(7))
	value.Set("c", uint8(9))

	bin, err := s.ValueToBinary("d", value, 0)
	if err != nil {
		t.Fatalf("ValueToBinary: %v", err)
	}
	if got := hex.EncodeToString(bin); got != "0709" {
		t.Fatalf("encoding mismatch: got %s, want 0709", got)
	}

	decoded, err := s.BinaryToValue("d", bin, 0)
	if err != nil {
		t.Fatalf("BinaryToValue: %v", err)
	}
	obj := decoded.(*abi.Object)
	if got := obj.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("field order = %v, want [a c]", got)
	}
}

// TestE5TypedefArray is seed scenario E5: typedefs u=uint32, v=u; type v[].
func TestE5TypedefArray(t *testing.T) {
	doc := &abi.Document{
		Version: "wasm::abi/1.1",
		Typedefs: []abi.TypeDef{
			{NewName: "u", Type: "uint32"},
			{NewName: "v", Type: "u"},
		},
	}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	value := []interface{}{uint32(10)}
	bin, err := s.ValueToBinary("v[]", value, 0)
	if err != nil {
		t.Fatalf("ValueToBinary: %v", err)
	}
	if got := hex.EncodeToString(bin); got != "010a000000" {
		t.Fatalf("encoding mismatch: got %s, want 010a000000", got)
	}
}

func TestArrayCapEnforced(t *testing.T) {
	doc := &abi.Document{Version: "wasm::abi/1.1"}
	s, err := NewSerializer(doc, time.Second, nil, nil)
	if err != nil {
		t.Fatalf("NewSerializer: %v", err)
	}

	buf := make([]byte, 10)
	w := NewWriter(buf)
	if err := WriteUvarint(w, MaxArraySize); err != nil {
		t.Fatalf("WriteUvarint: %v", err)
	}

	_, err = s.BinaryToValue("uint32[]", w.Bytes(), 0)
	kind, ok := abi.KindOf(err)
	if !ok || kind != abi.KindArraySizeExceeds {
		t.Fatalf("expected KindArraySizeExceeds, got %v", err)
	}
}

func TestDeadlineEnforcedOnDeepStructChain(t *testing.T) {
	const depth = 10000
	structs := make([]abi.Struct, 0, depth)
	structs = append(structs, abi.Struct{Name: "s0", Fields: []abi.Field{{Name: "v", Type: "uint8"}}})
	for i := 1; i < depth; i++ {
		name := "s" + itoa(i)
		prev := "s" + itoa(i-1)
		structs = append(structs, abi.Struct{Name: name, Fields: []abi.Field{{Name: "inner", Type: abi.TypeName(prev)}}})
	}
	doc := &abi.Document{Version: "wasm::abi/1.1", Structs: structs}

	_, err := NewSerializer(doc, time.Microsecond, nil, nil)
	kind, ok := abi.KindOf(err)
	if !ok || kind != abi.KindDeadlineExceeded {
		t.Fatalf("expected KindDeadlineExceeded for a 1us budget over %d structs, got %v", depth, err)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
