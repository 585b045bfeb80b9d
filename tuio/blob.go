package tuio

import (
	"math"
	"time"

	"github.com/chabad360/go-tuio/osc"
)

// Blob is an amorphous touch region: cursor kinematics plus orientation
// kinematics and a normalized bounding box with area.
type Blob struct {
	sessionID            int32
	position             Position
	velocity             Velocity
	acceleration         float32
	angle                float32
	rotationSpeed        float32
	rotationAcceleration float32
	width                float32
	height               float32
	area                 float32
}

// NewBlob returns a new Blob with zeroed motion. The angle is in radians,
// width, height and area are normalized to [0,1].
func NewBlob(sessionID int32, position Position, angle, width, height, area float32) *Blob {
	return &Blob{
		sessionID: sessionID,
		position:  position,
		angle:     wrapAngle(angle),
		width:     width,
		height:    height,
		area:      area,
	}
}

// WithMotion sets the blob's kinematic state and returns the blob.
// Producers use it to seed wire-reported motion; trackers always derive
// motion themselves.
func (b *Blob) WithMotion(velocity Velocity, rotationSpeed, acceleration, rotationAcceleration float32) *Blob {
	b.velocity = velocity
	b.rotationSpeed = rotationSpeed
	b.acceleration = acceleration
	b.rotationAcceleration = rotationAcceleration
	return b
}

// Update moves the blob to the new attributes and derives velocity,
// acceleration, rotation speed and rotation acceleration from the finite
// difference over dt. A non-positive dt is rejected.
func (b *Blob) Update(dt time.Duration, position Position, angle, width, height, area float32) error {
	delta, err := deltaSeconds(dt)
	if err != nil {
		return err
	}

	distance := position.Distance(b.position)
	lastSpeed := b.velocity.Speed()
	speed := distance / delta

	b.velocity = Velocity{
		X: (position.X - b.position.X) / delta,
		Y: (position.Y - b.position.Y) / delta,
	}
	b.acceleration = (speed - lastSpeed) / delta
	b.position = position

	rotationSpeed := deltaTurns(b.angle, angle) / delta
	b.rotationAcceleration = (rotationSpeed - b.rotationSpeed) / delta
	b.rotationSpeed = rotationSpeed
	b.angle = wrapAngle(angle)

	b.width = width
	b.height = height
	b.area = area

	return nil
}

// SessionID returns the blob's session id.
func (b *Blob) SessionID() int32 {
	return b.sessionID
}

// Position returns the normalized position.
func (b *Blob) Position() Position {
	return b.position
}

// X returns the normalized x position.
func (b *Blob) X() float32 {
	return b.position.X
}

// Y returns the normalized y position.
func (b *Blob) Y() float32 {
	return b.position.Y
}

// Velocity returns the velocity in normalized units per second.
func (b *Blob) Velocity() Velocity {
	return b.velocity
}

// Acceleration returns the scalar acceleration, the rate of change of speed.
func (b *Blob) Acceleration() float32 {
	return b.acceleration
}

// Angle returns the angle in radians, wrapped to [0, 2π).
func (b *Blob) Angle() float32 {
	return b.angle
}

// RotationSpeed returns the rotation speed in turns per second.
func (b *Blob) RotationSpeed() float32 {
	return b.rotationSpeed
}

// RotationAcceleration returns the rotation acceleration in turns per second
// squared.
func (b *Blob) RotationAcceleration() float32 {
	return b.rotationAcceleration
}

// Width returns the normalized width.
func (b *Blob) Width() float32 {
	return b.width
}

// Height returns the normalized height.
func (b *Blob) Height() float32 {
	return b.height
}

// Area returns the normalized area.
func (b *Blob) Area() float32 {
	return b.area
}

// PixelWidth returns the width in screen space.
func (b *Blob) PixelWidth(screenWidth uint16) uint16 {
	return uint16(b.width * float32(screenWidth))
}

// PixelHeight returns the height in screen space.
func (b *Blob) PixelHeight(screenHeight uint16) uint16 {
	return uint16(b.height * float32(screenHeight))
}

func (b *Blob) setMessage() *osc.Message {
	return osc.NewMessage(ProfileBlob.Address(), commandSet,
		b.sessionID,
		b.position.X, b.position.Y,
		b.angle,
		b.width, b.height, b.area,
		b.velocity.X, b.velocity.Y,
		b.rotationSpeed,
		b.acceleration,
		b.rotationAcceleration)
}

// wrapAngle wraps an angle in radians to [0, 2π).
func wrapAngle(angle float32) float32 {
	a := math.Mod(float64(angle), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return float32(a)
}
