package tuio

import (
	"time"

	"github.com/chabad360/go-tuio/osc"
)

// Object is a rigid tagged marker: a fiducial with a symbolic class id,
// position and orientation kinematics, but no shape extents.
type Object struct {
	sessionID            int32
	classID              int32
	position             Position
	velocity             Velocity
	acceleration         float32
	angle                float32
	rotationSpeed        float32
	rotationAcceleration float32
}

// NewObject returns a new Object with zeroed motion. The angle is in radians.
func NewObject(sessionID, classID int32, position Position, angle float32) *Object {
	return &Object{
		sessionID: sessionID,
		classID:   classID,
		position:  position,
		angle:     wrapAngle(angle),
	}
}

// WithMotion sets the object's kinematic state and returns the object.
// Producers use it to seed wire-reported motion; trackers always derive
// motion themselves.
func (o *Object) WithMotion(velocity Velocity, rotationSpeed, acceleration, rotationAcceleration float32) *Object {
	o.velocity = velocity
	o.rotationSpeed = rotationSpeed
	o.acceleration = acceleration
	o.rotationAcceleration = rotationAcceleration
	return o
}

// Update moves the object to the new position and angle and derives its
// kinematics from the finite difference over dt. A non-positive dt is
// rejected.
func (o *Object) Update(dt time.Duration, position Position, angle float32) error {
	delta, err := deltaSeconds(dt)
	if err != nil {
		return err
	}

	distance := position.Distance(o.position)
	lastSpeed := o.velocity.Speed()
	speed := distance / delta

	o.velocity = Velocity{
		X: (position.X - o.position.X) / delta,
		Y: (position.Y - o.position.Y) / delta,
	}
	o.acceleration = (speed - lastSpeed) / delta
	o.position = position

	rotationSpeed := deltaTurns(o.angle, angle) / delta
	o.rotationAcceleration = (rotationSpeed - o.rotationSpeed) / delta
	o.rotationSpeed = rotationSpeed
	o.angle = wrapAngle(angle)

	return nil
}

// SessionID returns the object's session id.
func (o *Object) SessionID() int32 {
	return o.sessionID
}

// ClassID returns the symbolic class id of the marker.
func (o *Object) ClassID() int32 {
	return o.classID
}

// Position returns the normalized position.
func (o *Object) Position() Position {
	return o.position
}

// X returns the normalized x position.
func (o *Object) X() float32 {
	return o.position.X
}

// Y returns the normalized y position.
func (o *Object) Y() float32 {
	return o.position.Y
}

// Velocity returns the velocity in normalized units per second.
func (o *Object) Velocity() Velocity {
	return o.velocity
}

// Acceleration returns the scalar acceleration, the rate of change of speed.
func (o *Object) Acceleration() float32 {
	return o.acceleration
}

// Angle returns the angle in radians, wrapped to [0, 2π).
func (o *Object) Angle() float32 {
	return o.angle
}

// RotationSpeed returns the rotation speed in turns per second.
func (o *Object) RotationSpeed() float32 {
	return o.rotationSpeed
}

// RotationAcceleration returns the rotation acceleration in turns per second
// squared.
func (o *Object) RotationAcceleration() float32 {
	return o.rotationAcceleration
}

func (o *Object) setMessage() *osc.Message {
	return osc.NewMessage(ProfileObject.Address(), commandSet,
		o.sessionID,
		o.classID,
		o.position.X, o.position.Y,
		o.angle,
		o.velocity.X, o.velocity.Y,
		o.rotationSpeed,
		o.acceleration,
		o.rotationAcceleration)
}
