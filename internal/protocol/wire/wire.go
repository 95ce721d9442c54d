// Package wire holds the primitive binary writers used by every codec era.
package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/Tnze/go-mc/nbt"

	"github.com/danmuck/sbcontrol/internal/protocol"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80

	// MaxVarIntLen and MaxVarLongLen bound the encoded widths.
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// Ordinal is an enumerated value written by its position.
type Ordinal interface {
	Ordinal() int
}

// Buffer is a growable, append-only byte buffer. The zero value is ready.
type Buffer struct {
	buf []byte
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Len() int { return len(b.buf) }

func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Write implements io.Writer so tag encoders can stream into the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *Buffer) WriteUint8(v uint8) {
	b.buf = append(b.buf, v)
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteUint8(1)
		return
	}
	b.WriteUint8(0)
}

func (b *Buffer) WriteInt32(v int32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, uint32(v))
}

func (b *Buffer) WriteInt64(v int64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, uint64(v))
}

// WriteVarInt writes v as 7-bit groups, low group first. Negative values take
// the full five bytes.
func (b *Buffer) WriteVarInt(v int32) {
	u := uint32(v)
	for u&^segmentBits != 0 {
		b.buf = append(b.buf, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	b.buf = append(b.buf, byte(u))
}

func (b *Buffer) WriteVarLong(v int64) {
	u := uint64(v)
	for u&^segmentBits != 0 {
		b.buf = append(b.buf, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	b.buf = append(b.buf, byte(u))
}

// WriteString writes the UTF-8 byte count as a varint, then the bytes.
func (b *Buffer) WriteString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: string is not valid utf-8", protocol.ErrInvalidArgument)
	}
	b.WriteVarInt(int32(len(s)))
	b.buf = append(b.buf, s...)
	return nil
}

// WriteEnum writes the ordinal of v as a varint.
func (b *Buffer) WriteEnum(v Ordinal) error {
	if v == nil {
		return fmt.Errorf("%w: nil enum", protocol.ErrInvalidArgument)
	}
	b.WriteVarInt(int32(v.Ordinal()))
	return nil
}

// WriteTag writes a structured tag in network form: the tag type byte
// followed by the unnamed payload.
func (b *Buffer) WriteTag(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil tag", protocol.ErrInvalidArgument)
	}
	enc := nbt.NewEncoder(b)
	enc.NetworkFormat(true)
	if err := enc.Encode(v, ""); err != nil {
		return fmt.Errorf("%w: encode tag: %v", protocol.ErrInvalidArgument, err)
	}
	return nil
}

// Writer encodes one element of type T.
type Writer[T any] func(*Buffer, T) error

// WriteString adapts Buffer.WriteString to a Writer.
func WriteString(b *Buffer, s string) error { return b.WriteString(s) }

// WriteSeq writes a varint count followed by each element.
func WriteSeq[T any](b *Buffer, values []T, write Writer[T]) error {
	if write == nil {
		return fmt.Errorf("%w: nil element writer", protocol.ErrInvalidArgument)
	}
	b.WriteVarInt(int32(len(values)))
	for i, v := range values {
		if err := write(b, v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// WriteOptional writes a presence flag, then the value when v is non-nil.
func WriteOptional[T any](b *Buffer, v *T, write Writer[T]) error {
	if write == nil {
		return fmt.Errorf("%w: nil value writer", protocol.ErrInvalidArgument)
	}
	if v == nil {
		b.WriteBool(false)
		return nil
	}
	b.WriteBool(true)
	return write(b, *v)
}
