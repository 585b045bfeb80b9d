package osc

import "errors"

// ErrFormat reports malformed OSC data: truncated buffers, missing null
// terminators or padding, unknown type tags, or nested bundle elements that
// declare a length larger than the remaining buffer. All decode errors
// returned by this package wrap ErrFormat.
var ErrFormat = errors.New("invalid OSC data")
