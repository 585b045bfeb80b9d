package tuio

import (
	"fmt"
	"strings"
	"time"

	"github.com/chabad360/go-tuio/osc"
)

// Profile identifies a TUIO entity kind and its OSC address.
type Profile string

const (
	ProfileCursor Profile = "2Dcur"
	ProfileObject Profile = "2Dobj"
	ProfileBlob   Profile = "2Dblb"

	addressPrefix = "/tuio/"
)

// The four TUIO frame commands, carried as the first (string) argument of
// every profile message.
const (
	commandSource = "source"
	commandAlive  = "alive"
	commandSet    = "set"
	commandFseq   = "fseq"
)

// Address returns the OSC address pattern of the profile.
func (p Profile) Address() string {
	return addressPrefix + string(p)
}

func (p Profile) String() string {
	return string(p)
}

// profileForAddress maps an OSC address to its profile. Unknown addresses
// are not an error, they belong to profiles this tracker doesn't speak.
func profileForAddress(addr string) (Profile, bool) {
	if !strings.HasPrefix(addr, addressPrefix) {
		return "", false
	}
	switch p := Profile(addr[len(addressPrefix):]); p {
	case ProfileCursor, ProfileObject, ProfileBlob:
		return p, true
	default:
		return "", false
	}
}

// frameMessage is one decoded TUIO message: source, alive, set or fseq.
// Recognition happens here, reconciliation in the session tables.
type frameMessage interface {
	profile() Profile
}

type sourceMessage struct {
	prof Profile
	name string
}

func (m *sourceMessage) profile() Profile { return m.prof }

type aliveMessage struct {
	prof       Profile
	sessionIDs []int32
}

func (m *aliveMessage) profile() Profile { return m.prof }

type fseqMessage struct {
	prof Profile
	fseq int32
}

func (m *fseqMessage) profile() Profile { return m.prof }

type cursorSet struct {
	id           int32
	position     Position
	velocity     Velocity
	acceleration float32
}

func (s *cursorSet) profile() Profile { return ProfileCursor }
func (s *cursorSet) sessionID() int32 { return s.id }

func (s *cursorSet) spawn() *Cursor {
	return NewCursor(s.id, s.position)
}

func (s *cursorSet) apply(c *Cursor, dt time.Duration) error {
	return c.Update(dt, s.position)
}

type objectSet struct {
	id                   int32
	class                int32
	position             Position
	angle                float32
	velocity             Velocity
	rotationSpeed        float32
	acceleration         float32
	rotationAcceleration float32
}

func (s *objectSet) profile() Profile { return ProfileObject }
func (s *objectSet) sessionID() int32 { return s.id }

func (s *objectSet) spawn() *Object {
	return NewObject(s.id, s.class, s.position, s.angle)
}

func (s *objectSet) apply(o *Object, dt time.Duration) error {
	return o.Update(dt, s.position, s.angle)
}

type blobSet struct {
	id                   int32
	position             Position
	angle                float32
	width                float32
	height               float32
	area                 float32
	velocity             Velocity
	rotationSpeed        float32
	acceleration         float32
	rotationAcceleration float32
}

func (s *blobSet) profile() Profile { return ProfileBlob }
func (s *blobSet) sessionID() int32 { return s.id }

func (s *blobSet) spawn() *Blob {
	return NewBlob(s.id, s.position, s.angle, s.width, s.height, s.area)
}

func (s *blobSet) apply(b *Blob, dt time.Duration) error {
	return b.Update(dt, s.position, s.angle, s.width, s.height, s.area)
}

// parseMessage recognizes a decoded OSC message as one of the TUIO frame
// messages. Addresses outside the known profiles, and commands this
// implementation doesn't speak, return nil without an error.
func parseMessage(m *osc.Message) (frameMessage, error) {
	prof, ok := profileForAddress(m.Address)
	if !ok {
		return nil, nil
	}

	if len(m.Arguments) == 0 {
		return nil, fmt.Errorf("%s: message without command: %w", m.Address, ErrFormat)
	}

	cmd, ok := m.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: command is %T, not string: %w", m.Address, m.Arguments[0], ErrFormat)
	}
	args := m.Arguments[1:]

	switch cmd {
	case commandSource:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s source: want 1 argument, got %d: %w", m.Address, len(args), ErrFormat)
		}
		name, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%s source: name is %T, not string: %w", m.Address, args[0], ErrFormat)
		}
		return &sourceMessage{prof: prof, name: name}, nil

	case commandAlive:
		ids := make([]int32, len(args))
		for i, a := range args {
			id, ok := a.(int32)
			if !ok {
				return nil, fmt.Errorf("%s alive: session id %d is %T, not int32: %w", m.Address, i, a, ErrFormat)
			}
			ids[i] = id
		}
		return &aliveMessage{prof: prof, sessionIDs: ids}, nil

	case commandFseq:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s fseq: want 1 argument, got %d: %w", m.Address, len(args), ErrFormat)
		}
		fseq, ok := args[0].(int32)
		if !ok {
			return nil, fmt.Errorf("%s fseq: value is %T, not int32: %w", m.Address, args[0], ErrFormat)
		}
		return &fseqMessage{prof: prof, fseq: fseq}, nil

	case commandSet:
		return parseSet(prof, m.Address, args)

	default:
		return nil, nil
	}
}

// parseSet decodes the per-profile set argument layout:
//
//	2Dcur: s x y X Y m
//	2Dobj: s i x y a X Y A m r
//	2Dblb: s x y a w h f X Y A m r
func parseSet(prof Profile, addr string, args []interface{}) (frameMessage, error) {
	p := setParser{addr: addr, args: args}

	switch prof {
	case ProfileCursor:
		s := &cursorSet{}
		s.id = p.int32()
		s.position = Position{X: p.float32(), Y: p.float32()}
		s.velocity = Velocity{X: p.float32(), Y: p.float32()}
		s.acceleration = p.float32()
		if err := p.finish(); err != nil {
			return nil, err
		}
		return s, nil

	case ProfileObject:
		s := &objectSet{}
		s.id = p.int32()
		s.class = p.int32()
		s.position = Position{X: p.float32(), Y: p.float32()}
		s.angle = p.float32()
		s.velocity = Velocity{X: p.float32(), Y: p.float32()}
		s.rotationSpeed = p.float32()
		s.acceleration = p.float32()
		s.rotationAcceleration = p.float32()
		if err := p.finish(); err != nil {
			return nil, err
		}
		return s, nil

	case ProfileBlob:
		s := &blobSet{}
		s.id = p.int32()
		s.position = Position{X: p.float32(), Y: p.float32()}
		s.angle = p.float32()
		s.width = p.float32()
		s.height = p.float32()
		s.area = p.float32()
		s.velocity = Velocity{X: p.float32(), Y: p.float32()}
		s.rotationSpeed = p.float32()
		s.acceleration = p.float32()
		s.rotationAcceleration = p.float32()
		if err := p.finish(); err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, nil
}

// setParser consumes typed set arguments left to right, remembering the
// first mismatch so the layouts above stay free of error plumbing.
type setParser struct {
	addr string
	args []interface{}
	pos  int
	err  error
}

func (p *setParser) int32() int32 {
	if p.err != nil {
		return 0
	}
	if p.pos >= len(p.args) {
		p.err = fmt.Errorf("%s set: missing argument %d: %w", p.addr, p.pos+1, ErrFormat)
		return 0
	}
	v, ok := p.args[p.pos].(int32)
	if !ok {
		p.err = fmt.Errorf("%s set: argument %d is %T, not int32: %w", p.addr, p.pos+1, p.args[p.pos], ErrFormat)
		return 0
	}
	p.pos++
	return v
}

func (p *setParser) float32() float32 {
	if p.err != nil {
		return 0
	}
	if p.pos >= len(p.args) {
		p.err = fmt.Errorf("%s set: missing argument %d: %w", p.addr, p.pos+1, ErrFormat)
		return 0
	}
	v, ok := p.args[p.pos].(float32)
	if !ok {
		p.err = fmt.Errorf("%s set: argument %d is %T, not float32: %w", p.addr, p.pos+1, p.args[p.pos], ErrFormat)
		return 0
	}
	p.pos++
	return v
}

func (p *setParser) finish() error {
	if p.err != nil {
		return p.err
	}
	if p.pos != len(p.args) {
		return fmt.Errorf("%s set: %d trailing arguments: %w", p.addr, len(p.args)-p.pos, ErrFormat)
	}
	return nil
}
