package abi

import "testing"

func TestStreamPrimitivesRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf)

	if err := w.WriteUint8(0xab); err != nil {
		t.Fatalf("WriteUint8: %v", err)
	}
	if err := w.WriteInt16(-1234); err != nil {
		t.Fatalf("WriteInt16: %v", err)
	}
	if err := w.WriteUint32(0xdeadbeef); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	if err := w.WriteInt64(-9223372036854775807); err != nil {
		t.Fatalf("WriteInt64: %v", err)
	}
	if err := w.WriteFloat64(3.14159); err != nil {
		t.Fatalf("WriteFloat64: %v", err)
	}

	r := NewReader(w.Bytes())
	if v, err := r.ReadUint8(); err != nil || v != 0xab {
		t.Fatalf("ReadUint8 = %v, %v", v, err)
	}
	if v, err := r.ReadInt16(); err != nil || v != -1234 {
		t.Fatalf("ReadInt16 = %v, %v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadUint32 = %v, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != -9223372036854775807 {
		t.Fatalf("ReadInt64 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 3.14159 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
}

func TestStreamOverflow(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("expected stream-overflow error reading past end")
	}

	w := NewWriter(make([]byte, 1))
	if err := w.WriteUint32(1); err == nil {
		t.Fatal("expected stream-overflow error writing past capacity")
	}
}

func TestStreamTellpAndRemaining(t *testing.T) {
	s := NewWriter(make([]byte, 10))
	if s.Tellp() != 0 || s.Remaining() != 10 {
		t.Fatalf("unexpected initial state: tellp=%d remaining=%d", s.Tellp(), s.Remaining())
	}
	_ = s.WriteUint32(1)
	if s.Tellp() != 4 || s.Remaining() != 6 {
		t.Fatalf("unexpected state after write: tellp=%d remaining=%d", s.Tellp(), s.Remaining())
	}
}
