package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...interface{}) error {
	for _, a := range args {
		if ToTypeTag(a) == TypeInvalid {
			return fmt.Errorf("Append: unsupported type: %T", a)
		}
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// CountArguments returns the number of arguments.
func (m *Message) CountArguments() int {
	return len(m.Arguments)
}

// Match returns true, if the OSC address pattern of the OSC Message matches the given
// address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	regexp, err := getRegEx(m.Address)
	if err != nil {
		return false
	}
	return regexp.MatchString(addr)
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}

	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, arg := range m.Arguments {
		s := ToTypeTag(arg)
		if s == TypeInvalid {
			return "", fmt.Errorf("TypeTags: unsupported type: %T", arg)
		}
		tags = append(tags, byte(s))
	}

	return string(tags), nil
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	tags, _ := m.TypeTags()

	strBuf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(strBuf)
	strBuf.Reset()

	strBuf.WriteString(m.Address)
	if len(tags) == 0 {
		return strBuf.String()
	}

	strBuf.WriteByte(' ')
	strBuf.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(strBuf, " %v", arg)

		case nil:
			strBuf.WriteString(" Nil")

		case []byte:
			strBuf.WriteString(" blob")

		case Timetag:
			fmt.Fprintf(strBuf, " %d", arg.TimeTag())
		}
	}

	return strBuf.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Message) MarshalBinary() (b []byte, err error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err = m.LightMarshalBinary(data); err != nil {
		return nil, err
	}
	return append(b, data.Bytes()...), nil
}

// LightMarshalBinary marshals the message into data, which makes the buffer
// reusable across messages.
func (m *Message) LightMarshalBinary(data *bytes.Buffer) error {
	b := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(b)
	b.Reset()

	var buf [bit64Size]byte

	// Collect the payload first, the type tags already validate each
	// argument type.
	for _, arg := range m.Arguments {
		switch t := arg.(type) {
		default:
			return fmt.Errorf("LightMarshalBinary: unsupported type: %T", t)

		case bool, nil:
			continue
		case int32:
			binary.BigEndian.PutUint32(buf[:bit32Size], uint32(t))
			b.Write(buf[:bit32Size])
		case float32:
			binary.BigEndian.PutUint32(buf[:bit32Size], math.Float32bits(t))
			b.Write(buf[:bit32Size])
		case int64:
			binary.BigEndian.PutUint64(buf[:], uint64(t))
			b.Write(buf[:])
		case float64:
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(t))
			b.Write(buf[:])
		case Timetag:
			binary.BigEndian.PutUint64(buf[:], uint64(t))
			b.Write(buf[:])
		case string:
			writePaddedString(t, b)
		case []byte:
			writeBlob(t, b)
		}
	}

	typetags, err := m.TypeTags()
	if err != nil {
		return err
	}

	writePaddedString(m.Address, data)
	writePaddedString(typetags, data)
	data.Write(b.Bytes())

	if data.Len() >= MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: packet too large: %d", data.Len())
	}

	return nil
}

// NewMessageFromData returns a new Message parsed from data.
func NewMessageFromData(data []byte) (msg *Message, err error) {
	msg = &Message{}
	if err = msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("UnmarshalBinary: data is not a valid OSC message: %w", ErrFormat)
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't mod 4: %w", ErrFormat)
	}

	addr, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	m.Address = addr
	if err = m.parseArguments(data[n:]); err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	return nil
}

// parseArguments parses the type tag string and the arguments following it.
func (m *Message) parseArguments(data []byte) error {
	// A message without a type tag string carries no arguments.
	if len(data) == 0 {
		return nil
	}

	typetags, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("parseArguments: %w", err)
	}
	data = data[n:]

	if len(typetags) == 0 {
		return nil
	}

	if typetags[0] != ',' {
		return fmt.Errorf("parseArguments: unsupported type tag string %q: %w", typetags, ErrFormat)
	}

	m.Arguments = make([]interface{}, 0, len(typetags)-1)

	for _, c := range typetags[1:] {
		switch TypeTag(c) {
		default:
			return fmt.Errorf("parseArguments: unsupported type tag: %c: %w", c, ErrFormat)

		case TypeInt32:
			if len(data) < bit32Size {
				return fmt.Errorf("parseArguments: truncated int32: %w", ErrFormat)
			}
			m.Arguments = append(m.Arguments, int32(binary.BigEndian.Uint32(data[:bit32Size])))
			data = data[bit32Size:]

		case TypeFloat32:
			if len(data) < bit32Size {
				return fmt.Errorf("parseArguments: truncated float32: %w", ErrFormat)
			}
			m.Arguments = append(m.Arguments, math.Float32frombits(binary.BigEndian.Uint32(data[:bit32Size])))
			data = data[bit32Size:]

		case TypeInt64:
			if len(data) < bit64Size {
				return fmt.Errorf("parseArguments: truncated int64: %w", ErrFormat)
			}
			m.Arguments = append(m.Arguments, int64(binary.BigEndian.Uint64(data[:bit64Size])))
			data = data[bit64Size:]

		case TypeFloat64:
			if len(data) < bit64Size {
				return fmt.Errorf("parseArguments: truncated float64: %w", ErrFormat)
			}
			m.Arguments = append(m.Arguments, math.Float64frombits(binary.BigEndian.Uint64(data[:bit64Size])))
			data = data[bit64Size:]

		case TypeTimeTag:
			if len(data) < bit64Size {
				return fmt.Errorf("parseArguments: truncated time tag: %w", ErrFormat)
			}
			m.Arguments = append(m.Arguments, Timetag(binary.BigEndian.Uint64(data[:bit64Size])))
			data = data[bit64Size:]

		case TypeString:
			str, n, err := parsePaddedString(data)
			if err != nil {
				return fmt.Errorf("parseArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, str)
			data = data[n:]

		case TypeBlob:
			buf, n, err := parseBlob(data)
			if err != nil {
				return fmt.Errorf("parseArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, buf)
			data = data[n:]

		case TypeNil:
			m.Arguments = append(m.Arguments, nil)

		case TypeTrue:
			m.Arguments = append(m.Arguments, true)

		case TypeFalse:
			m.Arguments = append(m.Arguments, false)
		}
	}

	return nil
}
