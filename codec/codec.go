/*
Package codec serializes models, messages and transactions using the protocol
buffers wire format.

Every persisted type implements Marshal and Unmarshal by hand with a Buffer
and Decode. Field numbers are part of the storage and transaction format and
must never be reused. Zero values are omitted, the same way proto3 does it,
and unknown fields are skipped when decoding.
*/
package codec

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Wire types as defined by the protocol buffers encoding.
const (
	WireVarint  = 0
	WireFixed64 = 1
	WireBytes   = 2
	WireFixed32 = 5
)

// Marshaller is implemented by any type that can be embedded as a nested
// message.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Unmarshaller is implemented by any type that can be decoded from a nested
// message.
type Unmarshaller interface {
	Unmarshal([]byte) error
}

// Buffer accumulates encoded fields.
type Buffer struct {
	buf *proto.Buffer
	err error
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{buf: proto.NewBuffer(nil)}
}

func (b *Buffer) key(field int, wire int) {
	if b.err != nil {
		return
	}
	b.err = b.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field. Zero is omitted.
func (b *Buffer) Uint64(field int, v uint64) *Buffer {
	if v == 0 {
		return b
	}
	b.key(field, WireVarint)
	if b.err == nil {
		b.err = b.buf.EncodeVarint(v)
	}
	return b
}

// Uint32 writes a varint field. Zero is omitted.
func (b *Buffer) Uint32(field int, v uint32) *Buffer {
	return b.Uint64(field, uint64(v))
}

// Int64 writes a varint field using two's complement, like the int64 proto
// type. Zero is omitted.
func (b *Buffer) Int64(field int, v int64) *Buffer {
	return b.Uint64(field, uint64(v))
}

// Bool writes a varint field. False is omitted.
func (b *Buffer) Bool(field int, v bool) *Buffer {
	if !v {
		return b
	}
	return b.Uint64(field, 1)
}

// Bytes writes a length delimited field. Empty values are omitted.
func (b *Buffer) Bytes(field int, v []byte) *Buffer {
	if len(v) == 0 {
		return b
	}
	b.key(field, WireBytes)
	if b.err == nil {
		b.err = b.buf.EncodeRawBytes(v)
	}
	return b
}

// RepeatedBytes writes every value as a separate field occurrence, keeping
// the order. Unlike Bytes, empty values are written so that positions are
// preserved.
func (b *Buffer) RepeatedBytes(field int, vs [][]byte) *Buffer {
	for _, v := range vs {
		b.key(field, WireBytes)
		if b.err == nil {
			b.err = b.buf.EncodeRawBytes(v)
		}
	}
	return b
}

// String writes a length delimited field. Empty values are omitted.
func (b *Buffer) String(field int, v string) *Buffer {
	if v == "" {
		return b
	}
	b.key(field, WireBytes)
	if b.err == nil {
		b.err = b.buf.EncodeStringBytes(v)
	}
	return b
}

// Message writes a nested message. A nil message is omitted.
func (b *Buffer) Message(field int, m Marshaller) *Buffer {
	if m == nil || b.err != nil {
		return b
	}
	raw, err := m.Marshal()
	if err != nil {
		b.err = err
		return b
	}
	b.key(field, WireBytes)
	if b.err == nil {
		b.err = b.buf.EncodeRawBytes(raw)
	}
	return b
}

// Result returns the serialized fields, or the first error that happened
// while writing.
func (b *Buffer) Result() ([]byte, error) {
	if b.err != nil {
		return nil, errors.Wrap(b.err, "encode")
	}
	return b.buf.Bytes(), nil
}

// Field is a single decoded field value.
type Field struct {
	Number int
	Wire   int

	varint uint64
	raw    []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.Wire != WireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not varint", f.Number, f.Wire)
	}
	return f.varint, nil
}

// Uint32 returns the value of a varint field, failing on overflow.
func (f Field) Uint32() (uint32, error) {
	v, err := f.Uint64()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		return 0, errors.Wrapf(errors.ErrOverflow, "field %d", f.Number)
	}
	return uint32(v), nil
}

// Int64 returns the value of a varint field.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Bool returns the value of a varint field.
func (f Field) Bool() (bool, error) {
	v, err := f.Uint64()
	return v != 0, err
}

// Bytes returns a copy of a length delimited field value.
func (f Field) Bytes() ([]byte, error) {
	if f.Wire != WireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not length delimited", f.Number, f.Wire)
	}
	cp := make([]byte, len(f.raw))
	copy(cp, f.raw)
	return cp, nil
}

// String returns a length delimited field value.
func (f Field) String() (string, error) {
	raw, err := f.Bytes()
	return string(raw), err
}

// Message decodes a nested message into the given destination.
func (f Field) Message(dst Unmarshaller) error {
	raw, err := f.Bytes()
	if err != nil {
		return err
	}
	return dst.Unmarshal(raw)
}

// Decode iterates over all fields of a serialized message and calls fn for
// each of them, in the order they were written. Fields that fn does not
// recognize should be ignored to allow forward compatible formats.
func Decode(data []byte, fn func(Field) error) error {
	for pos := 0; pos < len(data); {
		key, n := proto.DecodeVarint(data[pos:])
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "malformed field key")
		}
		pos += n

		f := Field{Number: int(key >> 3), Wire: int(key & 7)}
		if f.Number <= 0 {
			return errors.Wrapf(errors.ErrInput, "invalid field number %d", f.Number)
		}

		switch f.Wire {
		case WireVarint:
			v, n := proto.DecodeVarint(data[pos:])
			if n == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: malformed varint", f.Number)
			}
			pos += n
			f.varint = v
		case WireFixed64:
			if len(data)-pos < 8 {
				return errors.Wrapf(errors.ErrInput, "field %d: unexpected end of data", f.Number)
			}
			f.varint = binary.LittleEndian.Uint64(data[pos:])
			pos += 8
		case WireFixed32:
			if len(data)-pos < 4 {
				return errors.Wrapf(errors.ErrInput, "field %d: unexpected end of data", f.Number)
			}
			f.varint = uint64(binary.LittleEndian.Uint32(data[pos:]))
			pos += 4
		case WireBytes:
			size, n := proto.DecodeVarint(data[pos:])
			if n == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: malformed length", f.Number)
			}
			pos += n
			if size > uint64(len(data)-pos) {
				return errors.Wrapf(errors.ErrInput, "field %d: unexpected end of data", f.Number)
			}
			f.raw = data[pos : pos+int(size)]
			pos += int(size)
		default:
			return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", f.Number, f.Wire)
		}

		if err := fn(f); err != nil {
			return errors.Wrapf(err, "field %d", f.Number)
		}
	}
	return nil
}
