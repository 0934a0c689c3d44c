package abi

import (
	"encoding/binary"
	"math"

	"github.com/wasmabi/serializer/pkg/abi"
)

// Stream is a positional cursor over an externally owned, fixed-size byte buffer. It
// never reallocates on read; writes fail once the buffer is exhausted. It mirrors the
// original wasm::datastream<char*> cursor: tellp/remaining plus little-endian
// fixed-width primitive reads and writes.
type Stream struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading. The returned Stream does not copy buf.
func NewReader(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// NewWriter wraps buf for writing, starting at offset zero.
func NewWriter(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// Tellp returns the current cursor offset.
func (s *Stream) Tellp() int { return s.pos }

// Remaining returns the number of unread/unwritten bytes left in the buffer.
func (s *Stream) Remaining() int { return len(s.buf) - s.pos }

// Bytes returns the portion of the underlying buffer written so far.
func (s *Stream) Bytes() []byte { return s.buf[:s.pos] }

func (s *Stream) overflow(typeName string) error {
	return abi.NewError(abi.KindUnpackException, typeName, "stream-overflow: %d bytes remaining", s.Remaining())
}

// ReadByte reads and returns the next byte.
func (s *Stream) ReadByte() (byte, error) {
	if s.Remaining() < 1 {
		return 0, s.overflow("")
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadBytes reads exactly n raw bytes and returns a copy.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if s.Remaining() < n {
		return nil, s.overflow("")
	}
	out := make([]byte, n)
	copy(out, s.buf[s.pos:s.pos+n])
	s.pos += n
	return out, nil
}

// WriteByte writes a single byte.
func (s *Stream) WriteByte(b byte) error {
	if s.Remaining() < 1 {
		return s.overflow("")
	}
	s.buf[s.pos] = b
	s.pos++
	return nil
}

// WriteBytes writes raw bytes verbatim.
func (s *Stream) WriteBytes(b []byte) error {
	if s.Remaining() < len(b) {
		return s.overflow("")
	}
	copy(s.buf[s.pos:], b)
	s.pos += len(b)
	return nil
}

func (s *Stream) ReadUint8() (uint8, error)  { return s.ReadByte() }
func (s *Stream) WriteUint8(v uint8) error   { return s.WriteByte(v) }
func (s *Stream) ReadInt8() (int8, error) {
	b, err := s.ReadByte()
	return int8(b), err
}
func (s *Stream) WriteInt8(v int8) error { return s.WriteByte(byte(v)) }

func (s *Stream) ReadUint16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (s *Stream) WriteUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return s.WriteBytes(b[:])
}

func (s *Stream) ReadUint32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *Stream) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return s.WriteBytes(b[:])
}

func (s *Stream) ReadUint64() (uint64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (s *Stream) WriteUint64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return s.WriteBytes(b[:])
}

func (s *Stream) ReadInt16() (int16, error) {
	v, err := s.ReadUint16()
	return int16(v), err
}
func (s *Stream) WriteInt16(v int16) error { return s.WriteUint16(uint16(v)) }

func (s *Stream) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}
func (s *Stream) WriteInt32(v int32) error { return s.WriteUint32(uint32(v)) }

func (s *Stream) ReadInt64() (int64, error) {
	v, err := s.ReadUint64()
	return int64(v), err
}
func (s *Stream) WriteInt64(v int64) error { return s.WriteUint64(uint64(v)) }

func (s *Stream) ReadFloat32() (float32, error) {
	v, err := s.ReadUint32()
	return math.Float32frombits(v), err
}
func (s *Stream) WriteFloat32(v float32) error { return s.WriteUint32(math.Float32bits(v)) }

func (s *Stream) ReadFloat64() (float64, error) {
	v, err := s.ReadUint64()
	return math.Float64frombits(v), err
}
func (s *Stream) WriteFloat64(v float64) error { return s.WriteUint64(math.Float64bits(v)) }
