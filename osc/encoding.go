package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

////
// De/Encoding functions
////

// parseBlob parses an OSC blob from data. It returns the blob content and
// the total number of bytes consumed, including the length prefix and
// padding.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: truncated length prefix: %w", ErrFormat)
	}

	blobLen := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
	n := bit32Size + blobLen + padBytesNeeded(blobLen)

	if blobLen < 0 || n > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: invalid blob length %d: %w", blobLen, ErrFormat)
	}

	return data[bit32Size : bit32Size+blobLen], n, nil
}

// writeBlob writes data as an OSC blob into b. If the length of data isn't
// 32-bit aligned, padding bytes are added.
func writeBlob(data []byte, b *bytes.Buffer) int {
	var l [bit32Size]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(data)))
	b.Write(l[:])

	b.Write(data)
	p := padBytesNeeded(len(data))
	b.Write(pad[:p])

	return bit32Size + len(data) + p
}

// parsePaddedString reads a null-terminated, 4-byte-aligned string from data
// and returns the string and the number of bytes consumed.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: missing null terminator: %w", ErrFormat)
	}

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		return "", 0, fmt.Errorf("parsePaddedString: missing padding: %w", ErrFormat)
	}

	return string(data[:pos]), n, nil
}

// writePaddedString writes str with a null terminator and padding bytes to b.
// Returns the number of written bytes.
func writePaddedString(str string, b *bytes.Buffer) int {
	b.WriteString(str)
	b.WriteByte(0)
	n := len(str) + 1

	p := padBytesNeeded(n)
	b.Write(pad[:p])

	return n + p
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

// TypeTag is one character of a message's type tag string, identifying the
// OSC type of a single argument.
type TypeTag byte

// Type tags grouped by payload layout: fixed 32-bit, fixed 64-bit, padded
// variable length, payload-free.
const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'

	TypeInt64   TypeTag = 'h'
	TypeFloat64 TypeTag = 'd'
	TypeTimeTag TypeTag = 't'

	TypeString TypeTag = 's'
	TypeBlob   TypeTag = 'b'

	TypeTrue  TypeTag = 'T'
	TypeFalse TypeTag = 'F'
	TypeNil   TypeTag = 'N'

	// TypeInvalid marks a Go value the codec can't represent.
	TypeInvalid TypeTag = 0
)

// ToTypeTag returns the type tag for a Go value, TypeInvalid if the codec
// can't represent it.
func ToTypeTag(arg interface{}) TypeTag {
	switch v := arg.(type) {
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case Timetag:
		return TypeTimeTag
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case bool:
		if v {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	}
	return TypeInvalid
}
