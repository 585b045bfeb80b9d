package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const bundleTagString = "#bundle"

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle with the immediate time tag.
func NewBundle() *Bundle {
	return &Bundle{Timetag: TimetagImmediate}
}

// NewBundleWithTime returns an OSC Bundle with a time tag for the given time.
func NewBundleWithTime(time time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(time)}
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("Append: unsupported OSC packet type: only Bundle and Message are supported")

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// Flatten returns the leaf messages of the bundle in depth-first,
// left-to-right order.
func (b *Bundle) Flatten() []*Message {
	msgs := make([]*Message, 0, len(b.Elements))
	for _, elem := range b.Elements {
		switch p := elem.(type) {
		case *Message:
			msgs = append(msgs, p)
		case *Bundle:
			msgs = append(msgs, p.Flatten()...)
		}
	}
	return msgs
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err := b.LightMarshalBinary(data); err != nil {
		return nil, err
	}

	bb := make([]byte, data.Len())
	copy(bb, data.Bytes())

	return bb, nil
}

// LightMarshalBinary marshals the bundle into data with the following format:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func (b *Bundle) LightMarshalBinary(data *bytes.Buffer) error {
	writePaddedString(bundleTagString, data)

	var buf [bit64Size]byte
	binary.BigEndian.PutUint64(buf[:], uint64(b.Timetag))
	data.Write(buf[:])

	for _, elem := range b.Elements {
		bb, err := elem.MarshalBinary()
		if err != nil {
			return err
		}

		binary.BigEndian.PutUint32(buf[:bit32Size], uint32(len(bb)))
		data.Write(buf[:bit32Size])
		data.Write(bb)
	}

	if data.Len() >= MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: packet too large: %d", data.Len())
	}

	return nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly: %w", ErrFormat)
	}

	// '#bundle' string plus time tag. Zero elements is a valid bundle.
	if len(data) < 16 {
		return fmt.Errorf("UnmarshalBinary: bundle is too short: %w", ErrFormat)
	}

	startTag, n, err := parsePaddedString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	if startTag != bundleTagString {
		return fmt.Errorf("UnmarshalBinary: invalid bundle start tag %q: %w", startTag, ErrFormat)
	}

	b.Timetag = Timetag(binary.BigEndian.Uint64(data[:bit64Size]))
	data = data[bit64Size:]

	// Read length-prefixed elements until the end of the buffer.
	for len(data) > 0 {
		if len(data) < bit32Size {
			return fmt.Errorf("UnmarshalBinary: truncated element length: %w", ErrFormat)
		}

		length := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
		data = data[bit32Size:]
		if length < 0 || length > len(data) {
			return fmt.Errorf("UnmarshalBinary: invalid bundle element length %d: %w", length, ErrFormat)
		}

		p, err := ParsePacket(data[:length])
		if err != nil {
			return err
		}
		data = data[length:]
		b.Append(p)
	}

	return nil
}
