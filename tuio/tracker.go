package tuio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chabad360/go-tuio/osc"
)

// fseqRestartGap is how far backwards a frame sequence number has to jump
// before the tracker treats it as a source restart instead of a stale frame.
// Matches the tolerance of the reference TUIO client.
const fseqRestartGap = 100

// setApplier ties a decoded set message to the entity type it spawns and
// mutates. cursorSet, objectSet and blobSet implement it for *Cursor,
// *Object and *Blob.
type setApplier[E any] interface {
	sessionID() int32
	spawn() E
	apply(e E, dt time.Duration) error
}

// profileTable is the untyped face of a session table. The Tracker routes
// alive, source and fseq handling through it without knowing the entity
// type.
type profileTable interface {
	bufferAlive(ids []int32)
	skip()
	commit(fseq int32, at time.Time) ([]Event, []error)
	lastFrame() int32
}

// table is one per-profile session table plus the frame reconciliation
// algorithm, shared by all three entity kinds. It owns its entries
// exclusively; events carry snapshot copies only.
type table[E any, S setApplier[E]] struct {
	prof Profile
	wrap func(typ EventType, e E) Event

	entities map[int32]E
	order    []int32
	seen     map[int32]time.Time
	lastFseq int32

	// Pending frame, accumulated until an fseq message commits it.
	sets     []S
	alive    []int32
	hasAlive bool
	skipped  bool
}

func newTable[E any, S setApplier[E]](prof Profile, wrap func(EventType, E) Event) *table[E, S] {
	return &table[E, S]{
		prof:     prof,
		wrap:     wrap,
		entities: make(map[int32]E),
		seen:     make(map[int32]time.Time),
		lastFseq: -1,
	}
}

func (t *table[E, S]) bufferSet(s S) {
	t.sets = append(t.sets, s)
}

func (t *table[E, S]) bufferAlive(ids []int32) {
	t.alive = ids
	t.hasAlive = true
}

// skip marks the pending frame as belonging to a foreign source; commit
// discards it without events and without advancing the frame sequence.
func (t *table[E, S]) skip() {
	t.skipped = true
}

func (t *table[E, S]) lastFrame() int32 {
	return t.lastFseq
}

func (t *table[E, S]) resetFrame() {
	t.sets = t.sets[:0]
	t.alive = nil
	t.hasAlive = false
	t.skipped = false
}

// commit reconciles the pending frame against the session table and returns
// the lifecycle events: adds, then updates, then removes (removes in table
// order). Message-level problems are collected as recoverable errors; a
// stale fseq drops the frame wholesale.
func (t *table[E, S]) commit(fseq int32, at time.Time) ([]Event, []error) {
	defer t.resetFrame()

	if t.skipped {
		return nil, nil
	}

	if fseq >= 0 {
		if t.lastFseq >= 0 && fseq <= t.lastFseq && t.lastFseq-fseq < fseqRestartGap {
			return nil, []error{fmt.Errorf("%s: frame %d not newer than %d: %w", t.prof, fseq, t.lastFseq, ErrStaleFrame)}
		}
		t.lastFseq = fseq
	}

	var errs []error

	aliveSet := make(map[int32]struct{}, len(t.alive))
	for _, id := range t.alive {
		aliveSet[id] = struct{}{}
	}

	var adds, updates []Event
	for _, s := range t.sets {
		id := s.sessionID()
		if t.hasAlive {
			if _, ok := aliveSet[id]; !ok {
				// Applied anyway: alive ordering relative to set is not
				// guaranteed across producers.
				errs = append(errs, fmt.Errorf("%s: set for session %d: %w", t.prof, id, ErrSessionInconsistency))
			}
		}

		if e, ok := t.entities[id]; ok {
			if err := s.apply(e, at.Sub(t.seen[id])); err != nil {
				errs = append(errs, err)
				continue
			}
			t.seen[id] = at
			updates = append(updates, t.wrap(EventUpdate, e))
		} else {
			e := s.spawn()
			t.entities[id] = e
			t.seen[id] = at
			t.order = append(t.order, id)
			adds = append(adds, t.wrap(EventAdd, e))
		}
	}

	events := append(adds, updates...)

	if t.hasAlive {
		keep := t.order[:0]
		for _, id := range t.order {
			if _, ok := aliveSet[id]; ok {
				keep = append(keep, id)
				continue
			}
			events = append(events, t.wrap(EventRemove, t.entities[id]))
			delete(t.entities, id)
			delete(t.seen, id)
		}
		t.order = keep
	}

	return events, errs
}

// Tracker is the session dispatcher: it consumes decoded OSC packets and
// reconciles them into add/update/remove events against one session table
// per profile. One Tracker tracks one source; calls into it are serialized
// internally.
type Tracker struct {
	mu        sync.Mutex
	logger    *logrus.Logger
	now       func() time.Time
	filter    string
	source    string
	listeners []Listener

	cursors *table[*Cursor, *cursorSet]
	objects *table[*Object, *objectSet]
	blobs   *table[*Blob, *blobSet]
	tables  map[Profile]profileTable
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger receiving frame diagnostics.
func WithLogger(l *logrus.Logger) TrackerOption {
	return func(t *Tracker) { t.logger = l }
}

// WithSource makes the tracker drop frames announcing a source name other
// than name. Without it, all sources are accepted.
func WithSource(name string) TrackerOption {
	return func(t *Tracker) { t.filter = name }
}

// WithClock sets the clock used to timestamp observations when a packet has
// no usable bundle time tag. Tests use it for determinism.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker returns a Tracker with empty session tables for all three
// profiles.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		logger: logrus.StandardLogger(),
		now:    time.Now,
	}

	t.cursors = newTable[*Cursor, *cursorSet](ProfileCursor, func(typ EventType, c *Cursor) Event {
		s := *c
		return Event{Type: typ, Profile: ProfileCursor, SessionID: s.sessionID, Cursor: &s}
	})
	t.objects = newTable[*Object, *objectSet](ProfileObject, func(typ EventType, o *Object) Event {
		s := *o
		return Event{Type: typ, Profile: ProfileObject, SessionID: s.sessionID, Object: &s}
	})
	t.blobs = newTable[*Blob, *blobSet](ProfileBlob, func(typ EventType, b *Blob) Event {
		s := *b
		return Event{Type: typ, Profile: ProfileBlob, SessionID: s.sessionID, Blob: &s}
	})
	t.tables = map[Profile]profileTable{
		ProfileCursor: t.cursors,
		ProfileObject: t.objects,
		ProfileBlob:   t.blobs,
	}

	for _, o := range opts {
		o(t)
	}
	return t
}

// AddListener registers a listener for lifecycle events.
func (t *Tracker) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Source returns the name announced by the last accepted source message.
func (t *Tracker) Source() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source
}

// LastFrame returns the last accepted frame sequence number for the profile,
// or -1 if no frame has been accepted yet.
func (t *Tracker) LastFrame(p Profile) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tbl, ok := t.tables[p]; ok {
		return tbl.lastFrame()
	}
	return -1
}

// ProcessPacket feeds one decoded OSC packet to the tracker. Bundles are
// flattened depth-first and their time tag, when not immediate, timestamps
// the contained observations. It returns the lifecycle events of every
// frame the packet completed, and the joined recoverable diagnostics
// (wrapping ErrFormat, ErrStaleFrame or ErrSessionInconsistency). Events
// are valid even when the error is non-nil.
func (t *Tracker) ProcessPacket(p osc.Packet) ([]Event, error) {
	msgs, tt := osc.Messages(p)
	at := t.now()
	if !tt.Immediate() {
		at = tt.Time()
	}
	return t.ProcessMessages(msgs, at)
}

// ProcessMessages feeds decoded OSC messages observed at the given time to
// the tracker. See ProcessPacket.
func (t *Tracker) ProcessMessages(msgs []*osc.Message, at time.Time) ([]Event, error) {
	t.mu.Lock()

	var events []Event
	var errs []error

	for _, m := range msgs {
		fm, err := parseMessage(m)
		if err != nil {
			errs = append(errs, err)
			t.logger.WithField("address", m.Address).WithError(err).Warn("dropping malformed TUIO message")
			continue
		}
		if fm == nil {
			continue
		}

		switch v := fm.(type) {
		case *sourceMessage:
			if t.filter != "" && v.name != t.filter {
				t.tables[v.prof].skip()
				t.logger.WithFields(logrus.Fields{
					"profile": v.prof,
					"source":  v.name,
				}).Debug("skipping frame from foreign source")
				continue
			}
			t.source = v.name

		case *aliveMessage:
			t.tables[v.prof].bufferAlive(v.sessionIDs)

		case *cursorSet:
			t.cursors.bufferSet(v)
		case *objectSet:
			t.objects.bufferSet(v)
		case *blobSet:
			t.blobs.bufferSet(v)

		case *fseqMessage:
			ev, cerrs := t.tables[v.prof].commit(v.fseq, at)
			events = append(events, ev...)
			errs = append(errs, cerrs...)
			for _, cerr := range cerrs {
				t.logDiagnostic(v.prof, cerr)
			}
		}
	}

	listeners := append([]Listener(nil), t.listeners...)
	t.mu.Unlock()

	for _, l := range listeners {
		for _, e := range events {
			l.ProcessEvent(e)
		}
	}

	return events, errors.Join(errs...)
}

func (t *Tracker) logDiagnostic(prof Profile, err error) {
	entry := t.logger.WithField("profile", prof).WithError(err)
	switch {
	case errors.Is(err, ErrStaleFrame):
		entry.Debug("dropped stale frame")
	case errors.Is(err, ErrSessionInconsistency):
		entry.Warn("session inconsistency")
	default:
		entry.Warn("dropped malformed set message")
	}
}

// Cursors returns snapshot copies of all live cursors, in the order they
// were first seen.
func (t *Tracker) Cursors() []Cursor {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Cursor, 0, len(t.cursors.order))
	for _, id := range t.cursors.order {
		out = append(out, *t.cursors.entities[id])
	}
	return out
}

// Objects returns snapshot copies of all live objects, in the order they
// were first seen.
func (t *Tracker) Objects() []Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Object, 0, len(t.objects.order))
	for _, id := range t.objects.order {
		out = append(out, *t.objects.entities[id])
	}
	return out
}

// Blobs returns snapshot copies of all live blobs, in the order they were
// first seen.
func (t *Tracker) Blobs() []Blob {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Blob, 0, len(t.blobs.order))
	for _, id := range t.blobs.order {
		out = append(out, *t.blobs.entities[id])
	}
	return out
}
