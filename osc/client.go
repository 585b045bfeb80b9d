package osc

import (
	"bytes"
	"fmt"
	"net"
)

// Client transmits OSC packets to one server, one packet per UDP datagram.
type Client struct {
	conn net.Conn
}

// lightMarshaler is satisfied by Message and Bundle; it lets Send reuse a
// pooled buffer instead of allocating per packet.
type lightMarshaler interface {
	LightMarshalBinary(*bytes.Buffer) error
}

// Dial creates a new Client connected to the server at addr (host:port).
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// LocalAddr returns the local address the client sends from.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Send marshals the packet and transmits it as a single datagram. Steady
// packet streams, like entity frames at sensor rate, don't allocate: the
// marshal buffer is pooled.
func (c *Client) Send(packet Packet) error {
	lm, ok := packet.(lightMarshaler)
	if !ok {
		return fmt.Errorf("Send: unsupported packet type %T", packet)
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	if err := lm.LightMarshalBinary(buf); err != nil {
		return err
	}

	_, err := c.conn.Write(buf.Bytes())
	return err
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}
