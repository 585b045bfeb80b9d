package tuio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlob(t *testing.T) {
	b := NewBlob(3, Position{X: 0.5, Y: 0.5}, 1, 0.2, 0.1, 0.02)

	assert.Equal(t, int32(3), b.SessionID())
	assert.Equal(t, float32(1), b.Angle())
	assert.Equal(t, float32(0.2), b.Width())
	assert.Equal(t, float32(0.1), b.Height())
	assert.Equal(t, float32(0.02), b.Area())
	assert.Equal(t, Velocity{}, b.Velocity())
	assert.Equal(t, float32(0), b.RotationSpeed())
}

func TestNewBlobWrapsAngle(t *testing.T) {
	b := NewBlob(1, Position{}, -float32(math.Pi)/2, 0.1, 0.1, 0.01)

	assert.InDelta(t, 3*math.Pi/2, float64(b.Angle()), 1e-6)
}

func TestBlobUpdateDerivesRotation(t *testing.T) {
	b := NewBlob(1, Position{X: 0.5, Y: 0.5}, 0, 0.2, 0.1, 0.02)

	// A quarter turn in one second: rotation speed 0.25 turns per second,
	// starting from rest the rotation acceleration matches it.
	require.NoError(t, b.Update(time.Second, Position{X: 0.5, Y: 0.5}, float32(math.Pi)/2, 0.2, 0.1, 0.02))

	assert.InDelta(t, 0.25, float64(b.RotationSpeed()), 1e-6)
	assert.InDelta(t, 0.25, float64(b.RotationAcceleration()), 1e-6)
	assert.InDelta(t, math.Pi/2, float64(b.Angle()), 1e-6)
	assert.Equal(t, Velocity{}, b.Velocity())
}

func TestBlobUpdateRotationWrap(t *testing.T) {
	b := NewBlob(1, Position{}, 0, 0.1, 0.1, 0.01)

	// From 0 to 3/4 of a turn the short way is a quarter turn backwards.
	require.NoError(t, b.Update(time.Second, Position{}, 3*float32(math.Pi)/2, 0.1, 0.1, 0.01))

	assert.InDelta(t, -0.25, float64(b.RotationSpeed()), 1e-6)
	assert.InDelta(t, 3*math.Pi/2, float64(b.Angle()), 1e-6)
}

func TestBlobUpdateDerivesMotion(t *testing.T) {
	b := NewBlob(1, Position{}, 0, 0.1, 0.1, 0.01)

	require.NoError(t, b.Update(time.Second, Position{X: 1, Y: 1}, 0, 0.3, 0.2, 0.06))

	assert.Equal(t, Velocity{X: 1, Y: 1}, b.Velocity())
	assert.InDelta(t, math.Sqrt2, float64(b.Acceleration()), 1e-6)
	assert.Equal(t, float32(0.3), b.Width())
	assert.Equal(t, float32(0.2), b.Height())
	assert.Equal(t, float32(0.06), b.Area())
}

func TestBlobUpdateRejectsNonPositiveDelta(t *testing.T) {
	b := NewBlob(1, Position{}, 0, 0.1, 0.1, 0.01)

	err := b.Update(0, Position{X: 1, Y: 1}, 0, 0.1, 0.1, 0.01)
	require.ErrorIs(t, err, ErrFormat)

	assert.Equal(t, Position{}, b.Position())
}

func TestBlobWithMotion(t *testing.T) {
	b := NewBlob(1, Position{}, 0, 0.1, 0.1, 0.01).
		WithMotion(Velocity{X: 1, Y: 2}, 0.5, 3, 4)

	assert.Equal(t, Velocity{X: 1, Y: 2}, b.Velocity())
	assert.Equal(t, float32(0.5), b.RotationSpeed())
	assert.Equal(t, float32(3), b.Acceleration())
	assert.Equal(t, float32(4), b.RotationAcceleration())
}

func TestBlobPixelExtents(t *testing.T) {
	b := NewBlob(1, Position{}, 0, 0.5, 0.25, 0.125)

	assert.Equal(t, uint16(960), b.PixelWidth(1920))
	assert.Equal(t, uint16(270), b.PixelHeight(1080))
}

func TestWrapAngle(t *testing.T) {
	pi := float32(math.Pi)

	assert.InDelta(t, 0, float64(wrapAngle(0)), 1e-6)
	assert.InDelta(t, math.Pi, float64(wrapAngle(3*pi)), 1e-5)
	assert.InDelta(t, 3*math.Pi/2, float64(wrapAngle(-pi/2)), 1e-6)
}
