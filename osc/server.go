package osc

import (
	"net"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Server represents an OSC server. The server listens on Addr for incoming
// OSC packets and bundles and hands them to its Dispatcher.
type Server struct {
	Addr        string
	Dispatcher  *Dispatcher
	ReadTimeout time.Duration

	// Logger receives packet-level diagnostics. Defaults to the standard
	// logrus logger.
	Logger *logrus.Logger
}

func (s *Server) logger() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// ListenAndServe retrieves incoming OSC packets and dispatches the retrieved
// OSC packets.
func (s *Server) ListenAndServe() error {
	if s.Dispatcher == nil {
		s.Dispatcher = &Dispatcher{}
	}

	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

// Serve retrieves incoming OSC packets from the given connection and
// dispatches retrieved OSC packets. If something goes wrong an error is
// returned.
func (s *Server) Serve(c net.PacketConn) error {
	var tempDelay time.Duration
	for {
		msg, addr, err := s.readFromConnection(c)
		if err != nil {
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
			} else if !ok {
				s.logger().WithFields(logrus.Fields{
					"remote": addr,
				}).WithError(err).Debug("dropping malformed packet")
				continue
			}
			return err
		}
		tempDelay = 0
		go s.serve(msg, addr)
	}
}

func (s *Server) serve(m Packet, a net.Addr) {
	defer func() {
		if err := recover(); err != nil {
			buf := make([]byte, 8192)
			buf = buf[:runtime.Stack(buf, false)]
			s.logger().WithFields(logrus.Fields{
				"remote": a,
				"panic":  err,
			}).Errorf("panic handling packet\n%s", buf)
		}
	}()
	s.Dispatcher.Dispatch(m)
}

// ReceivePacket listens for incoming OSC packets and returns the packet if
// one is received.
func (s *Server) ReceivePacket(c net.PacketConn) (Packet, net.Addr, error) {
	return s.readFromConnection(c)
}

// readFromConnection retrieves OSC packets.
func (s *Server) readFromConnection(c net.PacketConn) (Packet, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bPool.Get().(*[]byte)
	defer bPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}
	bb := make([]byte, n)
	copy(bb, *b)

	p, err := ParsePacket(bb)
	return p, a, err
}
