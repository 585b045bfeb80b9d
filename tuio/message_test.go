package tuio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chabad360/go-tuio/osc"
)

func TestProfileAddress(t *testing.T) {
	assert.Equal(t, "/tuio/2Dcur", ProfileCursor.Address())
	assert.Equal(t, "/tuio/2Dobj", ProfileObject.Address())
	assert.Equal(t, "/tuio/2Dblb", ProfileBlob.Address())
}

func TestProfileForAddress(t *testing.T) {
	for addr, want := range map[string]Profile{
		"/tuio/2Dcur": ProfileCursor,
		"/tuio/2Dobj": ProfileObject,
		"/tuio/2Dblb": ProfileBlob,
	} {
		p, ok := profileForAddress(addr)
		require.True(t, ok, addr)
		assert.Equal(t, want, p)
	}

	for _, addr := range []string{"/tuio/25Dcur", "/tuio/", "/midi/note", "/tuio2/frm"} {
		_, ok := profileForAddress(addr)
		assert.False(t, ok, addr)
	}
}

func TestParseMessageSource(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dcur", "source", "simulator@localhost"))
	require.NoError(t, err)

	src, ok := fm.(*sourceMessage)
	require.True(t, ok)
	assert.Equal(t, ProfileCursor, src.profile())
	assert.Equal(t, "simulator@localhost", src.name)
}

func TestParseMessageAlive(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dobj", "alive", int32(3), int32(7)))
	require.NoError(t, err)

	alive, ok := fm.(*aliveMessage)
	require.True(t, ok)
	assert.Equal(t, ProfileObject, alive.profile())
	assert.Equal(t, []int32{3, 7}, alive.sessionIDs)

	// An empty alive list is a complete, valid message.
	fm, err = parseMessage(osc.NewMessage("/tuio/2Dobj", "alive"))
	require.NoError(t, err)
	assert.Empty(t, fm.(*aliveMessage).sessionIDs)
}

func TestParseMessageFseq(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dblb", "fseq", int32(42)))
	require.NoError(t, err)

	fseq, ok := fm.(*fseqMessage)
	require.True(t, ok)
	assert.Equal(t, ProfileBlob, fseq.profile())
	assert.Equal(t, int32(42), fseq.fseq)
}

func TestParseMessageCursorSet(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dcur", "set",
		int32(1), float32(0.1), float32(0.2), float32(0.3), float32(0.4), float32(0.5)))
	require.NoError(t, err)

	s, ok := fm.(*cursorSet)
	require.True(t, ok)
	assert.Equal(t, int32(1), s.sessionID())
	assert.Equal(t, Position{X: 0.1, Y: 0.2}, s.position)
	assert.Equal(t, Velocity{X: 0.3, Y: 0.4}, s.velocity)
	assert.Equal(t, float32(0.5), s.acceleration)
}

func TestParseMessageObjectSet(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dobj", "set",
		int32(2), int32(9), float32(0.1), float32(0.2), float32(1.5),
		float32(0.3), float32(0.4), float32(0.25), float32(0.5), float32(0.6)))
	require.NoError(t, err)

	s, ok := fm.(*objectSet)
	require.True(t, ok)
	assert.Equal(t, int32(2), s.sessionID())
	assert.Equal(t, int32(9), s.class)
	assert.Equal(t, float32(1.5), s.angle)
	assert.Equal(t, float32(0.25), s.rotationSpeed)
	assert.Equal(t, float32(0.6), s.rotationAcceleration)
}

func TestParseMessageBlobSet(t *testing.T) {
	fm, err := parseMessage(osc.NewMessage("/tuio/2Dblb", "set",
		int32(3), float32(0.5), float32(0.5), float32(1), float32(0.2), float32(0.1), float32(0.02),
		float32(0), float32(0), float32(0.25), float32(0), float32(0)))
	require.NoError(t, err)

	s, ok := fm.(*blobSet)
	require.True(t, ok)
	assert.Equal(t, int32(3), s.sessionID())
	assert.Equal(t, float32(0.2), s.width)
	assert.Equal(t, float32(0.1), s.height)
	assert.Equal(t, float32(0.02), s.area)
	assert.Equal(t, float32(0.25), s.rotationSpeed)
}

func TestParseMessageIgnoresForeignTraffic(t *testing.T) {
	// Unknown addresses and unknown commands belong to peers speaking other
	// dialects; both pass through silently.
	for _, m := range []*osc.Message{
		osc.NewMessage("/midi/note", int32(60)),
		osc.NewMessage("/tuio/25Dcur", "set"),
		osc.NewMessage("/tuio/2Dcur", "fscale", float32(1)),
	} {
		fm, err := parseMessage(m)
		assert.NoError(t, err, m.Address)
		assert.Nil(t, fm, m.Address)
	}
}

func TestParseMessageErrors(t *testing.T) {
	for name, m := range map[string]*osc.Message{
		"no command":            osc.NewMessage("/tuio/2Dcur"),
		"command not a string":  osc.NewMessage("/tuio/2Dcur", int32(1)),
		"source without name":   osc.NewMessage("/tuio/2Dcur", "source"),
		"source name not a string": osc.NewMessage("/tuio/2Dcur", "source", int32(1)),
		"alive with float id":   osc.NewMessage("/tuio/2Dcur", "alive", float32(1)),
		"fseq without value":    osc.NewMessage("/tuio/2Dcur", "fseq"),
		"fseq with float value": osc.NewMessage("/tuio/2Dcur", "fseq", float32(1)),
		"set too few arguments": osc.NewMessage("/tuio/2Dcur", "set", int32(1), float32(0.1)),
		"set too many arguments": osc.NewMessage("/tuio/2Dcur", "set",
			int32(1), float32(0), float32(0), float32(0), float32(0), float32(0), float32(0)),
		"set argument type mismatch": osc.NewMessage("/tuio/2Dcur", "set",
			float32(1), float32(0), float32(0), float32(0), float32(0), float32(0)),
	} {
		t.Run(name, func(t *testing.T) {
			fm, err := parseMessage(m)
			require.ErrorIs(t, err, ErrFormat)
			assert.Nil(t, fm)
		})
	}
}
