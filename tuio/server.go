package tuio

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chabad360/go-tuio/osc"
)

// Server is the producer role: it owns the live entities of one source,
// allocates their session ids, and transmits complete frames over UDP.
type Server struct {
	mu     sync.Mutex
	client *osc.Client
	logger *logrus.Logger
	now    func() time.Time

	source      string
	nextSession int32

	cursors map[int32]*Cursor
	objects map[int32]*Object
	blobs   map[int32]*Blob
	order   map[Profile][]int32
	seen    map[int32]time.Time

	encoders map[Profile]*FrameEncoder
	dirty    map[Profile]bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger receiving send diagnostics.
func WithServerLogger(l *logrus.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithServerSource sets the source name announced in every frame.
func WithServerSource(name string) ServerOption {
	return func(s *Server) { s.source = name }
}

// WithServerClock sets the clock used for frame time tags and motion
// derivation. Tests use it for determinism.
func WithServerClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

// NewServer connects to a TUIO consumer at addr (host:port, UDP).
func NewServer(addr string, opts ...ServerOption) (*Server, error) {
	client, err := osc.Dial(addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		client:  client,
		logger:  logrus.StandardLogger(),
		now:     time.Now,
		cursors: make(map[int32]*Cursor),
		objects: make(map[int32]*Object),
		blobs:   make(map[int32]*Blob),
		order:   make(map[Profile][]int32),
		seen:    make(map[int32]time.Time),
		dirty:   make(map[Profile]bool),
	}
	for _, o := range opts {
		o(s)
	}

	s.encoders = map[Profile]*FrameEncoder{
		ProfileCursor: NewFrameEncoder(ProfileCursor, s.source),
		ProfileObject: NewFrameEncoder(ProfileObject, s.source),
		ProfileBlob:   NewFrameEncoder(ProfileBlob, s.source),
	}

	return s, nil
}

// Close closes the connection to the consumer.
func (s *Server) Close() error {
	return s.client.Close()
}

// session allocates the next session id. Ids are unique across all profiles
// for the lifetime of the server.
func (s *Server) session() int32 {
	s.nextSession++
	return s.nextSession
}

// CreateCursor adds a new cursor at the position and returns its session id.
func (s *Server) CreateCursor(pos Position) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.session()
	s.cursors[id] = NewCursor(id, pos)
	s.track(ProfileCursor, id)
	return id
}

// UpdateCursor moves the cursor, deriving its motion from the time since its
// last change.
func (s *Server) UpdateCursor(id int32, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cursors[id]
	if !ok {
		return fmt.Errorf("UpdateCursor: unknown session %d", id)
	}
	if err := c.Update(s.now().Sub(s.seen[id]), pos); err != nil {
		return err
	}
	s.track(ProfileCursor, id)
	return nil
}

// RemoveCursor drops the cursor from the next frame's alive list.
func (s *Server) RemoveCursor(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cursors[id]; !ok {
		return fmt.Errorf("RemoveCursor: unknown session %d", id)
	}
	delete(s.cursors, id)
	s.forget(ProfileCursor, id)
	return nil
}

// CreateObject adds a new tagged marker and returns its session id.
func (s *Server) CreateObject(classID int32, pos Position, angle float32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.session()
	s.objects[id] = NewObject(id, classID, pos, angle)
	s.track(ProfileObject, id)
	return id
}

// UpdateObject moves the object, deriving its motion from the time since its
// last change.
func (s *Server) UpdateObject(id int32, pos Position, angle float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("UpdateObject: unknown session %d", id)
	}
	if err := o.Update(s.now().Sub(s.seen[id]), pos, angle); err != nil {
		return err
	}
	s.track(ProfileObject, id)
	return nil
}

// RemoveObject drops the object from the next frame's alive list.
func (s *Server) RemoveObject(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("RemoveObject: unknown session %d", id)
	}
	delete(s.objects, id)
	s.forget(ProfileObject, id)
	return nil
}

// CreateBlob adds a new touch region and returns its session id.
func (s *Server) CreateBlob(pos Position, angle, width, height, area float32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.session()
	s.blobs[id] = NewBlob(id, pos, angle, width, height, area)
	s.track(ProfileBlob, id)
	return id
}

// UpdateBlob moves the blob, deriving its motion from the time since its
// last change.
func (s *Server) UpdateBlob(id int32, pos Position, angle, width, height, area float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		return fmt.Errorf("UpdateBlob: unknown session %d", id)
	}
	if err := b.Update(s.now().Sub(s.seen[id]), pos, angle, width, height, area); err != nil {
		return err
	}
	s.track(ProfileBlob, id)
	return nil
}

// RemoveBlob drops the blob from the next frame's alive list.
func (s *Server) RemoveBlob(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		return fmt.Errorf("RemoveBlob: unknown session %d", id)
	}
	delete(s.blobs, id)
	s.forget(ProfileBlob, id)
	return nil
}

func (s *Server) track(prof Profile, id int32) {
	if _, ok := s.seen[id]; !ok {
		s.order[prof] = append(s.order[prof], id)
	}
	s.seen[id] = s.now()
	s.dirty[prof] = true
}

func (s *Server) forget(prof Profile, id int32) {
	delete(s.seen, id)
	order := s.order[prof]
	for i, o := range order {
		if o == id {
			s.order[prof] = append(order[:i], order[i+1:]...)
			break
		}
	}
	s.dirty[prof] = true
}

// SendFrame transmits one complete frame for every profile that changed
// since the last send: all its set messages, the alive list and the next
// frame sequence number, bundled with the current time.
func (s *Server) SendFrame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	for _, prof := range []Profile{ProfileCursor, ProfileObject, ProfileBlob} {
		if !s.dirty[prof] {
			continue
		}

		var ents []Entity
		for _, id := range s.order[prof] {
			switch prof {
			case ProfileCursor:
				ents = append(ents, s.cursors[id])
			case ProfileObject:
				ents = append(ents, s.objects[id])
			case ProfileBlob:
				ents = append(ents, s.blobs[id])
			}
		}

		bundle, err := s.encoders[prof].Encode(at, ents...)
		if err != nil {
			return err
		}
		if err := s.client.Send(bundle); err != nil {
			return err
		}

		s.logger.WithFields(logrus.Fields{
			"profile": prof,
			"fseq":    s.encoders[prof].LastFrame(),
			"alive":   len(ents),
		}).Debug("sent frame")
		s.dirty[prof] = false
	}

	return nil
}
