package osc

import (
	"encoding"
	"fmt"
)

// Packet is the interface implemented by Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses a self-contained OSC packet, either a single message or
// a bundle. The first byte decides which: '/' starts an address pattern,
// '#' starts the '#bundle' tag.
func ParsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ParsePacket: empty packet: %w", ErrFormat)
	}

	switch data[0] {
	case '/':
		return NewMessageFromData(data)
	case '#':
		return NewBundleFromData(data)
	default:
		return nil, fmt.Errorf("ParsePacket: not an OSC packet: %w", ErrFormat)
	}
}

// Messages returns the leaf messages of a packet in depth-first,
// left-to-right order, together with the governing time tag. A bare message
// is reported with the immediate time tag.
func Messages(p Packet) ([]*Message, Timetag) {
	switch t := p.(type) {
	case *Message:
		return []*Message{t}, TimetagImmediate
	case *Bundle:
		return t.Flatten(), t.Timetag
	default:
		return nil, TimetagImmediate
	}
}
