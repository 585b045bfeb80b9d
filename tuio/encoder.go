package tuio

import (
	"fmt"
	"time"

	"github.com/chabad360/go-tuio/osc"
)

// Entity is implemented by Cursor, Object and Blob. The interface is sealed;
// only this package's entity types satisfy it.
type Entity interface {
	SessionID() int32
	profile() Profile
	setMessage() *osc.Message
}

func (c *Cursor) profile() Profile { return ProfileCursor }
func (o *Object) profile() Profile { return ProfileObject }
func (b *Blob) profile() Profile   { return ProfileBlob }

// FrameEncoder assembles complete TUIO frames for one profile: an optional
// source announcement, one set message per live entity, the alive list and
// a monotonically increasing frame sequence number, bundled with a time tag.
type FrameEncoder struct {
	prof   Profile
	source string
	fseq   int32
}

// NewFrameEncoder returns a FrameEncoder for the profile. A non-empty source
// name is announced in every frame.
func NewFrameEncoder(prof Profile, source string) *FrameEncoder {
	return &FrameEncoder{prof: prof, source: source}
}

// LastFrame returns the sequence number of the last encoded frame, or 0 if
// none has been encoded yet.
func (e *FrameEncoder) LastFrame() int32 {
	return e.fseq
}

// Encode builds one complete frame declaring exactly the given entities
// alive, time tagged with at. The returned bundle is ready to transmit.
func (e *FrameEncoder) Encode(at time.Time, entities ...Entity) (*osc.Bundle, error) {
	b := osc.NewBundleWithTime(at)
	addr := e.prof.Address()

	if e.source != "" {
		b.Append(osc.NewMessage(addr, commandSource, e.source))
	}

	alive := osc.NewMessage(addr, commandAlive)
	for _, ent := range entities {
		if ent.profile() != e.prof {
			return nil, fmt.Errorf("Encode: %s entity %d in %s frame: %w", ent.profile(), ent.SessionID(), e.prof, ErrFormat)
		}
		alive.Append(ent.SessionID())
		b.Append(ent.setMessage())
	}
	b.Append(alive)

	e.fseq++
	b.Append(osc.NewMessage(addr, commandFseq, e.fseq))

	return b, nil
}
