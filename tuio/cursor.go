package tuio

import (
	"fmt"
	"math"
	"time"

	"github.com/chabad360/go-tuio/osc"
)

// Position is a 2D point with components normalized to [0,1], independent of
// the sensor's resolution.
type Position struct {
	X, Y float32
}

// Distance returns the distance to the other position.
func (p Position) Distance(o Position) float32 {
	return float32(math.Hypot(float64(o.X-p.X), float64(o.Y-p.Y)))
}

// Velocity is a 2D vector in normalized units per second.
type Velocity struct {
	X, Y float32
}

// Speed returns the magnitude of the velocity.
func (v Velocity) Speed() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Cursor is the simplest TUIO entity: an unidentified touch point with
// position and motion, but no shape or orientation.
type Cursor struct {
	sessionID    int32
	position     Position
	velocity     Velocity
	acceleration float32
}

// NewCursor returns a new Cursor with zeroed motion.
func NewCursor(sessionID int32, position Position) *Cursor {
	return &Cursor{sessionID: sessionID, position: position}
}

// WithMotion sets the cursor's kinematic state and returns the cursor.
// Producers use it to seed wire-reported motion; trackers always derive
// motion themselves.
func (c *Cursor) WithMotion(velocity Velocity, acceleration float32) *Cursor {
	c.velocity = velocity
	c.acceleration = acceleration
	return c
}

// Update moves the cursor to position and derives velocity and acceleration
// from the finite difference over dt. A non-positive dt is rejected.
func (c *Cursor) Update(dt time.Duration, position Position) error {
	delta, err := deltaSeconds(dt)
	if err != nil {
		return err
	}

	distance := position.Distance(c.position)
	lastSpeed := c.velocity.Speed()
	speed := distance / delta

	c.velocity = Velocity{
		X: (position.X - c.position.X) / delta,
		Y: (position.Y - c.position.Y) / delta,
	}
	c.acceleration = (speed - lastSpeed) / delta
	c.position = position

	return nil
}

// SessionID returns the cursor's session id.
func (c *Cursor) SessionID() int32 {
	return c.sessionID
}

// Position returns the normalized position.
func (c *Cursor) Position() Position {
	return c.position
}

// X returns the normalized x position.
func (c *Cursor) X() float32 {
	return c.position.X
}

// Y returns the normalized y position.
func (c *Cursor) Y() float32 {
	return c.position.Y
}

// Velocity returns the velocity in normalized units per second.
func (c *Cursor) Velocity() Velocity {
	return c.velocity
}

// Acceleration returns the scalar acceleration, the rate of change of speed.
func (c *Cursor) Acceleration() float32 {
	return c.acceleration
}

// PixelX returns the x position in screen space.
func (c *Cursor) PixelX(screenWidth uint16) uint16 {
	return uint16(c.position.X * float32(screenWidth))
}

// PixelY returns the y position in screen space.
func (c *Cursor) PixelY(screenHeight uint16) uint16 {
	return uint16(c.position.Y * float32(screenHeight))
}

func (c *Cursor) setMessage() *osc.Message {
	return osc.NewMessage(ProfileCursor.Address(), commandSet,
		c.sessionID,
		c.position.X, c.position.Y,
		c.velocity.X, c.velocity.Y,
		c.acceleration)
}

// deltaSeconds converts dt to seconds, rejecting non-positive durations so
// derivative math never divides by zero.
func deltaSeconds(dt time.Duration) (float32, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("non-positive time delta %v: %w", dt, ErrFormat)
	}
	return float32(dt.Seconds()), nil
}

// deltaTurns converts an angle delta in radians to turns, normalized to
// (-0.5, 0.5] so a wrap past 2π reads as the short way around.
func deltaTurns(from, to float32) float32 {
	turns := float64(to-from) / (2 * math.Pi)
	return float32(turns - math.Ceil(turns-0.5))
}
