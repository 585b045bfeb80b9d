package tuio

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chabad360/go-tuio/osc"
)

// Client is the consumer role: it listens for TUIO packets on UDP, feeds
// them to its Tracker and notifies listeners of every lifecycle event.
type Client struct {
	Addr        string
	ReadTimeout time.Duration

	tracker *Tracker
	logger  *logrus.Logger

	conn   net.PacketConn
	closed atomic.Bool
}

// NewClient returns a Client listening on addr (host:port, UDP) once
// ListenAndServe is called. The options configure the embedded Tracker.
func NewClient(addr string, opts ...TrackerOption) *Client {
	c := &Client{
		Addr:    addr,
		tracker: NewTracker(opts...),
	}
	c.logger = c.tracker.logger
	return c
}

// Tracker returns the client's session tracker.
func (c *Client) Tracker() *Tracker {
	return c.tracker
}

// AddListener registers a listener for lifecycle events.
func (c *Client) AddListener(l Listener) {
	c.tracker.AddListener(l)
}

// Cursors returns snapshot copies of all live cursors.
func (c *Client) Cursors() []Cursor {
	return c.tracker.Cursors()
}

// Objects returns snapshot copies of all live objects.
func (c *Client) Objects() []Object {
	return c.tracker.Objects()
}

// Blobs returns snapshot copies of all live blobs.
func (c *Client) Blobs() []Blob {
	return c.tracker.Blobs()
}

// ListenAndServe opens the UDP socket and runs the receive loop until Close
// is called or the connection fails.
func (c *Client) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", c.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return c.Serve(ln)
}

// Serve runs the receive loop on the given connection: one OSC packet per
// datagram, decoded and handed to the tracker. Malformed packets and frame
// diagnostics are logged, never fatal.
func (c *Client) Serve(conn net.PacketConn) error {
	c.conn = conn

	var tempDelay time.Duration
	buf := make([]byte, osc.MaxPacketSize)
	for {
		if c.ReadTimeout != 0 {
			if err := conn.SetReadDeadline(time.Now().Add(c.ReadTimeout)); err != nil {
				return err
			}
		}

		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if c.closed.Load() {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			}
			return err
		}
		tempDelay = 0

		bb := make([]byte, n)
		copy(bb, buf)

		p, err := osc.ParsePacket(bb)
		if err != nil {
			c.logger.WithField("remote", addr).WithError(err).Debug("dropping malformed packet")
			continue
		}

		if _, err := c.tracker.ProcessPacket(p); err != nil {
			// Frame diagnostics are already logged by the tracker with
			// their severity; nothing here is fatal.
			continue
		}
	}
}

// Close stops the receive loop and closes the socket.
func (c *Client) Close() error {
	c.closed.Store(true)
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
