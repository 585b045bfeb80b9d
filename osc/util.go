package osc

import (
	"bytes"
	"sync"
)

const (
	// MaxPacketSize is the largest OSC packet this package will read or
	// write. It matches the maximum safe payload of a UDP datagram.
	MaxPacketSize = 65507

	bit32Size = 4
	bit64Size = 8

	secondsFrom1900To1970 = 2208988800
)

var (
	bufPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, MaxPacketSize))
		},
	}
	bPool = sync.Pool{
		New: func() interface{} {
			b := make([]byte, MaxPacketSize)
			return &b
		},
	}

	pad [4]byte
)
