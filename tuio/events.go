package tuio

// EventType is the lifecycle stage an entity passed through in an accepted
// frame.
type EventType int

const (
	// EventAdd fires on the first set message for a session id.
	EventAdd EventType = iota
	// EventUpdate fires on every subsequent set message for a known id.
	EventUpdate
	// EventRemove fires when a tracked id disappears from the alive list.
	EventRemove
)

func (e EventType) String() string {
	switch e {
	case EventAdd:
		return "add"
	case EventUpdate:
		return "update"
	case EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification. The entity field matching Profile
// holds a snapshot copy; the tracker keeps no reference to it and mutating
// it has no effect on the session table. For EventRemove the snapshot is the
// entity's last known state.
type Event struct {
	Type      EventType
	Profile   Profile
	SessionID int32

	Cursor *Cursor
	Object *Object
	Blob   *Blob
}

// Listener receives lifecycle events for every accepted frame, in order:
// adds, then updates, then removes.
type Listener interface {
	ProcessEvent(e Event)
}

// ListenerFunc implements the Listener interface.
type ListenerFunc func(e Event)

// ProcessEvent calls itself with the given event. Implements the Listener
// interface.
func (f ListenerFunc) ProcessEvent(e Event) {
	f(e)
}
