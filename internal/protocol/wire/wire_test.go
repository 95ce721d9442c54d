package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
)

func TestWriteVarInt(t *testing.T) {
	cases := []struct {
		in   int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tc := range cases {
		var b Buffer
		b.WriteVarInt(tc.in)
		if !bytes.Equal(b.Bytes(), tc.want) {
			t.Fatalf("varint %d: got % x want % x", tc.in, b.Bytes(), tc.want)
		}
		if b.Len() > MaxVarIntLen {
			t.Fatalf("varint %d exceeded %d bytes", tc.in, MaxVarIntLen)
		}
	}
}

func TestWriteVarLong(t *testing.T) {
	var b Buffer
	b.WriteVarLong(300)
	if !bytes.Equal(b.Bytes(), []byte{0xac, 0x02}) {
		t.Fatalf("varlong 300: got % x", b.Bytes())
	}
	b.Reset()
	b.WriteVarLong(-1)
	if b.Len() != MaxVarLongLen {
		t.Fatalf("varlong -1: expected %d bytes, got %d", MaxVarLongLen, b.Len())
	}
	b.Reset()
	b.WriteVarLong(math.MaxInt64)
	if b.Len() != 9 {
		t.Fatalf("varlong max: expected 9 bytes, got %d", b.Len())
	}
}

func TestWriteFixedWidthBigEndian(t *testing.T) {
	var b Buffer
	b.WriteUint8(0xab)
	b.WriteBool(true)
	b.WriteBool(false)
	b.WriteInt32(0x01020304)
	b.WriteInt64(-2)
	want := []byte{
		0xab, 0x01, 0x00,
		0x01, 0x02, 0x03, 0x04,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got % x want % x", b.Bytes(), want)
	}
}

func TestWriteString(t *testing.T) {
	var b Buffer
	if err := b.WriteString("hé"); err != nil {
		t.Fatalf("write string: %v", err)
	}
	want := []byte{0x03, 'h', 0xc3, 0xa9}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got % x want % x", b.Bytes(), want)
	}

	err := b.WriteString(string([]byte{0xff, 0xfe}))
	if !errors.Is(err, protocol.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWriteSeqAndOptional(t *testing.T) {
	var b Buffer
	if err := WriteSeq(&b, []string{"a", "bc"}, WriteString); err != nil {
		t.Fatalf("write seq: %v", err)
	}
	want := []byte{0x02, 0x01, 'a', 0x02, 'b', 'c'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("seq: got % x want % x", b.Bytes(), want)
	}

	if err := WriteSeq[string](&b, nil, nil); !errors.Is(err, protocol.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for nil writer, got %v", err)
	}

	b.Reset()
	name := "obj"
	if err := WriteOptional(&b, &name, WriteString); err != nil {
		t.Fatalf("optional present: %v", err)
	}
	if err := WriteOptional[string](&b, nil, WriteString); err != nil {
		t.Fatalf("optional absent: %v", err)
	}
	want = []byte{0x01, 0x03, 'o', 'b', 'j', 0x00}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("optional: got % x want % x", b.Bytes(), want)
	}
}

func TestWriteEnum(t *testing.T) {
	var b Buffer
	if err := b.WriteEnum(chat.Reset); err != nil {
		t.Fatalf("write enum: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{21}) {
		t.Fatalf("got % x", b.Bytes())
	}
	if err := b.WriteEnum(nil); !errors.Is(err, protocol.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWriteTag(t *testing.T) {
	var b Buffer
	if err := b.WriteTag(chat.Style{Color: "red"}); err != nil {
		t.Fatalf("write tag: %v", err)
	}
	want := []byte{
		0x0a,                                 // compound, unnamed
		0x08, 0x00, 0x05, 'c', 'o', 'l', 'o', 'r', // string "color"
		0x00, 0x03, 'r', 'e', 'd',
		0x00, // end
	}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got % x want % x", b.Bytes(), want)
	}

	b.Reset()
	if err := b.WriteTag(chat.Compile("", chat.Options{})); err != nil {
		t.Fatalf("write empty component: %v", err)
	}
	want = []byte{0x0a, 0x08, 0x00, 0x04, 't', 'e', 'x', 't', 0x00, 0x00, 0x00}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got % x want % x", b.Bytes(), want)
	}

	if err := b.WriteTag(nil); !errors.Is(err, protocol.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
