package tuio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCursor(t *testing.T) {
	c := NewCursor(7, Position{X: 0.25, Y: 0.75})

	assert.Equal(t, int32(7), c.SessionID())
	assert.Equal(t, float32(0.25), c.X())
	assert.Equal(t, float32(0.75), c.Y())
	assert.Equal(t, Velocity{}, c.Velocity())
	assert.Equal(t, float32(0), c.Acceleration())
}

func TestCursorUpdateDerivesMotion(t *testing.T) {
	c := NewCursor(1, Position{})

	// Moving across the full diagonal in one second leaves speed and
	// acceleration both at sqrt(2).
	require.NoError(t, c.Update(time.Second, Position{X: 1, Y: 1}))

	assert.Equal(t, Position{X: 1, Y: 1}, c.Position())
	assert.Equal(t, Velocity{X: 1, Y: 1}, c.Velocity())
	assert.InDelta(t, math.Sqrt2, float64(c.Velocity().Speed()), 1e-6)
	assert.InDelta(t, math.Sqrt2, float64(c.Acceleration()), 1e-6)
}

func TestCursorUpdateHalfSecond(t *testing.T) {
	c := NewCursor(1, Position{})

	require.NoError(t, c.Update(500*time.Millisecond, Position{X: 0.1, Y: 0.1}))

	assert.Equal(t, Velocity{X: 0.2, Y: 0.2}, c.Velocity())
}

func TestCursorUpdateDeceleration(t *testing.T) {
	c := NewCursor(1, Position{})

	require.NoError(t, c.Update(time.Second, Position{X: 1, Y: 0}))
	assert.Equal(t, float32(1), c.Acceleration())

	// Standing still for a second: velocity collapses to zero and the
	// acceleration turns negative.
	require.NoError(t, c.Update(time.Second, Position{X: 1, Y: 0}))
	assert.Equal(t, Velocity{}, c.Velocity())
	assert.Equal(t, float32(-1), c.Acceleration())
}

func TestCursorUpdateRejectsNonPositiveDelta(t *testing.T) {
	c := NewCursor(1, Position{X: 0.5, Y: 0.5})

	for _, dt := range []time.Duration{0, -time.Second} {
		err := c.Update(dt, Position{X: 1, Y: 1})
		require.ErrorIs(t, err, ErrFormat)
	}

	// A rejected update leaves the cursor untouched.
	assert.Equal(t, Position{X: 0.5, Y: 0.5}, c.Position())
	assert.Equal(t, Velocity{}, c.Velocity())
}

func TestCursorWithMotion(t *testing.T) {
	c := NewCursor(1, Position{}).WithMotion(Velocity{X: 2, Y: 3}, 4)

	assert.Equal(t, Velocity{X: 2, Y: 3}, c.Velocity())
	assert.Equal(t, float32(4), c.Acceleration())
}

func TestCursorPixelCoordinates(t *testing.T) {
	c := NewCursor(1, Position{X: 0.5, Y: 0.25})

	assert.Equal(t, uint16(960), c.PixelX(1920))
	assert.Equal(t, uint16(270), c.PixelY(1080))
}

func TestPositionDistance(t *testing.T) {
	assert.InDelta(t, 5, float64(Position{}.Distance(Position{X: 3, Y: 4})), 1e-6)
	assert.Equal(t, float32(0), Position{X: 1, Y: 1}.Distance(Position{X: 1, Y: 1}))
}

func TestVelocitySpeed(t *testing.T) {
	assert.InDelta(t, 5, float64(Velocity{X: 3, Y: 4}.Speed()), 1e-6)
	assert.Equal(t, float32(0), Velocity{}.Speed())
}

func TestDeltaTurns(t *testing.T) {
	pi := float32(math.Pi)

	// A quarter turn forward, and the short way around past the wrap.
	assert.InDelta(t, 0.25, float64(deltaTurns(0, pi/2)), 1e-6)
	assert.InDelta(t, -0.25, float64(deltaTurns(0, 3*pi/2)), 1e-6)
	// A half turn is ambiguous in direction but never more than half a turn.
	assert.InDelta(t, 0.5, math.Abs(float64(deltaTurns(0, pi))), 1e-6)
	assert.InDelta(t, 0, float64(deltaTurns(pi, pi)), 1e-6)
}
