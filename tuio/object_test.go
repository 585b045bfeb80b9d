package tuio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObject(t *testing.T) {
	o := NewObject(4, 12, Position{X: 0.5, Y: 0.25}, 1)

	assert.Equal(t, int32(4), o.SessionID())
	assert.Equal(t, int32(12), o.ClassID())
	assert.Equal(t, float32(0.5), o.X())
	assert.Equal(t, float32(0.25), o.Y())
	assert.Equal(t, float32(1), o.Angle())
	assert.Equal(t, Velocity{}, o.Velocity())
}

func TestObjectUpdateDerivesMotion(t *testing.T) {
	o := NewObject(1, 5, Position{}, 0)

	require.NoError(t, o.Update(time.Second, Position{X: 1, Y: 1}, float32(math.Pi)/2))

	assert.Equal(t, Velocity{X: 1, Y: 1}, o.Velocity())
	assert.InDelta(t, math.Sqrt2, float64(o.Acceleration()), 1e-6)
	assert.InDelta(t, 0.25, float64(o.RotationSpeed()), 1e-6)
	assert.InDelta(t, 0.25, float64(o.RotationAcceleration()), 1e-6)
	assert.Equal(t, int32(5), o.ClassID())
}

func TestObjectUpdateRotationDeceleration(t *testing.T) {
	o := NewObject(1, 5, Position{}, 0)
	pi := float32(math.Pi)

	require.NoError(t, o.Update(time.Second, Position{}, pi/2))
	// Holding the angle: rotation stops and the acceleration turns negative.
	require.NoError(t, o.Update(time.Second, Position{}, pi/2))

	assert.InDelta(t, 0, float64(o.RotationSpeed()), 1e-6)
	assert.InDelta(t, -0.25, float64(o.RotationAcceleration()), 1e-6)
}

func TestObjectUpdateRejectsNonPositiveDelta(t *testing.T) {
	o := NewObject(1, 5, Position{X: 0.5, Y: 0.5}, 0)

	err := o.Update(-time.Millisecond, Position{}, 0)
	require.ErrorIs(t, err, ErrFormat)

	assert.Equal(t, Position{X: 0.5, Y: 0.5}, o.Position())
}

func TestObjectWithMotion(t *testing.T) {
	o := NewObject(1, 5, Position{}, 0).
		WithMotion(Velocity{X: 1, Y: 2}, 0.25, 3, 4)

	assert.Equal(t, Velocity{X: 1, Y: 2}, o.Velocity())
	assert.Equal(t, float32(0.25), o.RotationSpeed())
	assert.Equal(t, float32(3), o.Acceleration())
	assert.Equal(t, float32(4), o.RotationAcceleration())
}
