package abi

import "github.com/wasmabi/serializer/pkg/abi"

// ReadUvarint reads an unsigned_varint: 7 payload bits per byte, MSB as continuation,
// little-endian group order (LEB128), matching wasm::unsigned_int's wire form.
func ReadUvarint(s *Stream) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := s.ReadByte()
		if err != nil {
			return 0, abi.WrapError(abi.KindUnpackException, "varuint32", err)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, abi.NewError(abi.KindUnpackException, "varuint32", "varint too long")
		}
	}
}

// WriteUvarint writes v as an unsigned_varint.
func WriteUvarint(s *Stream, v uint64) error {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		if err := s.WriteByte(b); err != nil {
			return abi.WrapError(abi.KindUnpackException, "varuint32", err)
		}
		if v == 0 {
			return nil
		}
	}
}

// ReadVarint reads a signed_varint: zig-zag decode of an unsigned_varint.
func ReadVarint(s *Stream) (int64, error) {
	u, err := ReadUvarint(s)
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

// WriteVarint writes v as a signed_varint: zig-zag encode, then as an unsigned_varint.
func WriteVarint(s *Stream, v int64) error {
	u := uint64(v<<1) ^ uint64(v>>63)
	return WriteUvarint(s, u)
}
