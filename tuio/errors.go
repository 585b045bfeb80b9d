package tuio

import "errors"

var (
	// ErrFormat reports a TUIO message whose arguments do not match its
	// profile's layout, or a non-positive time delta passed to a motion
	// update. The offending message is dropped; the rest of the frame is
	// unaffected.
	ErrFormat = errors.New("invalid TUIO message")

	// ErrStaleFrame reports a frame whose sequence number is not newer than
	// the last accepted one. The whole frame is dropped without touching the
	// session table.
	ErrStaleFrame = errors.New("stale TUIO frame")

	// ErrSessionInconsistency reports a set message whose session id is
	// missing from the same frame's alive list. The set is still applied.
	ErrSessionInconsistency = errors.New("session missing from alive list")
)
